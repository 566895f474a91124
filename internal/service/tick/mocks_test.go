package tick

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dkims/agentopia/internal/domain"
	"github.com/dkims/agentopia/internal/service/debate"
	"github.com/dkims/agentopia/internal/service/emergent"
)

var _ agentRepo = &agentRepoMock{}

type agentRepoMock struct {
	ListFunc                func(ctx context.Context) ([]*domain.Agent, error)
	ListWithValidTokensFunc func(ctx context.Context, now time.Time) ([]*domain.Agent, error)
	CountFunc               func(ctx context.Context) (int, error)

	calls struct {
		List []struct {
			Ctx context.Context
		}
		ListWithValidTokens []struct {
			Ctx context.Context
			Now time.Time
		}
		Count []struct {
			Ctx context.Context
		}
	}
	lockList                sync.RWMutex
	lockListWithValidTokens sync.RWMutex
	lockCount               sync.RWMutex
}

func (mock *agentRepoMock) List(ctx context.Context) ([]*domain.Agent, error) {
	if mock.ListFunc == nil {
		panic("agentRepoMock.ListFunc: method is nil but agentRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *agentRepoMock) ListCalls() []struct {
	Ctx context.Context
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *agentRepoMock) ListWithValidTokens(ctx context.Context, now time.Time) ([]*domain.Agent, error) {
	if mock.ListWithValidTokensFunc == nil {
		panic("agentRepoMock.ListWithValidTokensFunc: method is nil but agentRepo.ListWithValidTokens was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Now time.Time
	}{Ctx: ctx, Now: now}
	mock.lockListWithValidTokens.Lock()
	mock.calls.ListWithValidTokens = append(mock.calls.ListWithValidTokens, callInfo)
	mock.lockListWithValidTokens.Unlock()
	return mock.ListWithValidTokensFunc(ctx, now)
}

func (mock *agentRepoMock) ListWithValidTokensCalls() []struct {
	Ctx context.Context
	Now time.Time
} {
	mock.lockListWithValidTokens.RLock()
	calls := mock.calls.ListWithValidTokens
	mock.lockListWithValidTokens.RUnlock()
	return calls
}

func (mock *agentRepoMock) Count(ctx context.Context) (int, error) {
	if mock.CountFunc == nil {
		panic("agentRepoMock.CountFunc: method is nil but agentRepo.Count was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockCount.Lock()
	mock.calls.Count = append(mock.calls.Count, callInfo)
	mock.lockCount.Unlock()
	return mock.CountFunc(ctx)
}

func (mock *agentRepoMock) CountCalls() []struct {
	Ctx context.Context
} {
	mock.lockCount.RLock()
	calls := mock.calls.Count
	mock.lockCount.RUnlock()
	return calls
}

var _ postRepo = &postRepoMock{}

type postRepoMock struct {
	RandomOlderThanFunc func(ctx context.Context, cutoff time.Time) (*domain.Post, error)
	CountFunc           func(ctx context.Context) (int, error)

	calls struct {
		RandomOlderThan []struct {
			Ctx    context.Context
			Cutoff time.Time
		}
		Count []struct {
			Ctx context.Context
		}
	}
	lockRandomOlderThan sync.RWMutex
	lockCount           sync.RWMutex
}

func (mock *postRepoMock) RandomOlderThan(ctx context.Context, cutoff time.Time) (*domain.Post, error) {
	if mock.RandomOlderThanFunc == nil {
		panic("postRepoMock.RandomOlderThanFunc: method is nil but postRepo.RandomOlderThan was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Cutoff time.Time
	}{Ctx: ctx, Cutoff: cutoff}
	mock.lockRandomOlderThan.Lock()
	mock.calls.RandomOlderThan = append(mock.calls.RandomOlderThan, callInfo)
	mock.lockRandomOlderThan.Unlock()
	return mock.RandomOlderThanFunc(ctx, cutoff)
}

func (mock *postRepoMock) RandomOlderThanCalls() []struct {
	Ctx    context.Context
	Cutoff time.Time
} {
	mock.lockRandomOlderThan.RLock()
	calls := mock.calls.RandomOlderThan
	mock.lockRandomOlderThan.RUnlock()
	return calls
}

func (mock *postRepoMock) Count(ctx context.Context) (int, error) {
	if mock.CountFunc == nil {
		panic("postRepoMock.CountFunc: method is nil but postRepo.Count was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockCount.Lock()
	mock.calls.Count = append(mock.calls.Count, callInfo)
	mock.lockCount.Unlock()
	return mock.CountFunc(ctx)
}

func (mock *postRepoMock) CountCalls() []struct {
	Ctx context.Context
} {
	mock.lockCount.RLock()
	calls := mock.calls.Count
	mock.lockCount.RUnlock()
	return calls
}

var _ counter = &counterMock{}

type counterMock struct {
	CountFunc func(ctx context.Context) (int, error)

	calls struct {
		Count []struct {
			Ctx context.Context
		}
	}
	lockCount sync.RWMutex
}

func (mock *counterMock) Count(ctx context.Context) (int, error) {
	if mock.CountFunc == nil {
		panic("counterMock.CountFunc: method is nil but counter.Count was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockCount.Lock()
	mock.calls.Count = append(mock.calls.Count, callInfo)
	mock.lockCount.Unlock()
	return mock.CountFunc(ctx)
}

func (mock *counterMock) CountCalls() []struct {
	Ctx context.Context
} {
	mock.lockCount.RLock()
	calls := mock.calls.Count
	mock.lockCount.RUnlock()
	return calls
}

var _ contentService = &contentServiceMock{}

type contentServiceMock struct {
	GeneratePostFunc func(ctx context.Context, agentID uuid.UUID) (*domain.Post, error)

	calls struct {
		GeneratePost []struct {
			Ctx     context.Context
			AgentID uuid.UUID
		}
	}
	lockGeneratePost sync.RWMutex
}

func (mock *contentServiceMock) GeneratePost(ctx context.Context, agentID uuid.UUID) (*domain.Post, error) {
	if mock.GeneratePostFunc == nil {
		panic("contentServiceMock.GeneratePostFunc: method is nil but contentService.GeneratePost was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		AgentID uuid.UUID
	}{Ctx: ctx, AgentID: agentID}
	mock.lockGeneratePost.Lock()
	mock.calls.GeneratePost = append(mock.calls.GeneratePost, callInfo)
	mock.lockGeneratePost.Unlock()
	return mock.GeneratePostFunc(ctx, agentID)
}

func (mock *contentServiceMock) GeneratePostCalls() []struct {
	Ctx     context.Context
	AgentID uuid.UUID
} {
	mock.lockGeneratePost.RLock()
	calls := mock.calls.GeneratePost
	mock.lockGeneratePost.RUnlock()
	return calls
}

var _ interactionService = &interactionServiceMock{}

type interactionServiceMock struct {
	FanOutCommentsFunc func(ctx context.Context, postID, authorID uuid.UUID, maxCommenters int) ([]*domain.Comment, error)
	AuthorRepliesFunc  func(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)

	calls struct {
		FanOutComments []struct {
			Ctx           context.Context
			PostID        uuid.UUID
			AuthorID      uuid.UUID
			MaxCommenters int
		}
		AuthorReplies []struct {
			Ctx    context.Context
			PostID uuid.UUID
		}
	}
	lockFanOutComments sync.RWMutex
	lockAuthorReplies  sync.RWMutex
}

func (mock *interactionServiceMock) FanOutComments(ctx context.Context, postID, authorID uuid.UUID, maxCommenters int) ([]*domain.Comment, error) {
	if mock.FanOutCommentsFunc == nil {
		panic("interactionServiceMock.FanOutCommentsFunc: method is nil but interactionService.FanOutComments was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		PostID        uuid.UUID
		AuthorID      uuid.UUID
		MaxCommenters int
	}{Ctx: ctx, PostID: postID, AuthorID: authorID, MaxCommenters: maxCommenters}
	mock.lockFanOutComments.Lock()
	mock.calls.FanOutComments = append(mock.calls.FanOutComments, callInfo)
	mock.lockFanOutComments.Unlock()
	return mock.FanOutCommentsFunc(ctx, postID, authorID, maxCommenters)
}

func (mock *interactionServiceMock) FanOutCommentsCalls() []struct {
	Ctx           context.Context
	PostID        uuid.UUID
	AuthorID      uuid.UUID
	MaxCommenters int
} {
	mock.lockFanOutComments.RLock()
	calls := mock.calls.FanOutComments
	mock.lockFanOutComments.RUnlock()
	return calls
}

func (mock *interactionServiceMock) AuthorReplies(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	if mock.AuthorRepliesFunc == nil {
		panic("interactionServiceMock.AuthorRepliesFunc: method is nil but interactionService.AuthorReplies was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		PostID uuid.UUID
	}{Ctx: ctx, PostID: postID}
	mock.lockAuthorReplies.Lock()
	mock.calls.AuthorReplies = append(mock.calls.AuthorReplies, callInfo)
	mock.lockAuthorReplies.Unlock()
	return mock.AuthorRepliesFunc(ctx, postID)
}

func (mock *interactionServiceMock) AuthorRepliesCalls() []struct {
	Ctx    context.Context
	PostID uuid.UUID
} {
	mock.lockAuthorReplies.RLock()
	calls := mock.calls.AuthorReplies
	mock.lockAuthorReplies.RUnlock()
	return calls
}

var _ debateService = &debateServiceMock{}

type debateServiceMock struct {
	DetectConflictFunc func(ctx context.Context, postID uuid.UUID) (bool, error)
	TriggerDebateFunc  func(ctx context.Context, postID uuid.UUID) (*debate.Result, error)

	calls struct {
		DetectConflict []struct {
			Ctx    context.Context
			PostID uuid.UUID
		}
		TriggerDebate []struct {
			Ctx    context.Context
			PostID uuid.UUID
		}
	}
	lockDetectConflict sync.RWMutex
	lockTriggerDebate  sync.RWMutex
}

func (mock *debateServiceMock) DetectConflict(ctx context.Context, postID uuid.UUID) (bool, error) {
	if mock.DetectConflictFunc == nil {
		panic("debateServiceMock.DetectConflictFunc: method is nil but debateService.DetectConflict was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		PostID uuid.UUID
	}{Ctx: ctx, PostID: postID}
	mock.lockDetectConflict.Lock()
	mock.calls.DetectConflict = append(mock.calls.DetectConflict, callInfo)
	mock.lockDetectConflict.Unlock()
	return mock.DetectConflictFunc(ctx, postID)
}

func (mock *debateServiceMock) DetectConflictCalls() []struct {
	Ctx    context.Context
	PostID uuid.UUID
} {
	mock.lockDetectConflict.RLock()
	calls := mock.calls.DetectConflict
	mock.lockDetectConflict.RUnlock()
	return calls
}

func (mock *debateServiceMock) TriggerDebate(ctx context.Context, postID uuid.UUID) (*debate.Result, error) {
	if mock.TriggerDebateFunc == nil {
		panic("debateServiceMock.TriggerDebateFunc: method is nil but debateService.TriggerDebate was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		PostID uuid.UUID
	}{Ctx: ctx, PostID: postID}
	mock.lockTriggerDebate.Lock()
	mock.calls.TriggerDebate = append(mock.calls.TriggerDebate, callInfo)
	mock.lockTriggerDebate.Unlock()
	return mock.TriggerDebateFunc(ctx, postID)
}

func (mock *debateServiceMock) TriggerDebateCalls() []struct {
	Ctx    context.Context
	PostID uuid.UUID
} {
	mock.lockTriggerDebate.RLock()
	calls := mock.calls.TriggerDebate
	mock.lockTriggerDebate.RUnlock()
	return calls
}

var _ emergentService = &emergentServiceMock{}

type emergentServiceMock struct {
	DetectOpinionShiftsFunc func(ctx context.Context) ([]emergent.Shift, error)
	DetectResonanceFunc     func(ctx context.Context) ([]*domain.Whisper, error)
	RunMissionsFunc         func(ctx context.Context) (*domain.Mission, error)
	RunChallengesFunc       func(ctx context.Context) ([]*domain.Challenge, error)
	ExtractKnowledgeFunc    func(ctx context.Context, postID uuid.UUID) ([]*domain.KnowledgeEdge, error)
	ScheduleCapsuleFunc     func(ctx context.Context, postID uuid.UUID) (*domain.TimeCapsule, error)

	calls struct {
		DetectOpinionShifts []struct {
			Ctx context.Context
		}
		DetectResonance []struct {
			Ctx context.Context
		}
		RunMissions []struct {
			Ctx context.Context
		}
		RunChallenges []struct {
			Ctx context.Context
		}
		ExtractKnowledge []struct {
			Ctx    context.Context
			PostID uuid.UUID
		}
		ScheduleCapsule []struct {
			Ctx    context.Context
			PostID uuid.UUID
		}
	}
	lockDetectOpinionShifts sync.RWMutex
	lockDetectResonance     sync.RWMutex
	lockRunMissions         sync.RWMutex
	lockRunChallenges       sync.RWMutex
	lockExtractKnowledge    sync.RWMutex
	lockScheduleCapsule     sync.RWMutex
}

func (mock *emergentServiceMock) DetectOpinionShifts(ctx context.Context) ([]emergent.Shift, error) {
	if mock.DetectOpinionShiftsFunc == nil {
		panic("emergentServiceMock.DetectOpinionShiftsFunc: method is nil but emergentService.DetectOpinionShifts was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockDetectOpinionShifts.Lock()
	mock.calls.DetectOpinionShifts = append(mock.calls.DetectOpinionShifts, callInfo)
	mock.lockDetectOpinionShifts.Unlock()
	return mock.DetectOpinionShiftsFunc(ctx)
}

func (mock *emergentServiceMock) DetectOpinionShiftsCalls() []struct {
	Ctx context.Context
} {
	mock.lockDetectOpinionShifts.RLock()
	calls := mock.calls.DetectOpinionShifts
	mock.lockDetectOpinionShifts.RUnlock()
	return calls
}

func (mock *emergentServiceMock) DetectResonance(ctx context.Context) ([]*domain.Whisper, error) {
	if mock.DetectResonanceFunc == nil {
		panic("emergentServiceMock.DetectResonanceFunc: method is nil but emergentService.DetectResonance was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockDetectResonance.Lock()
	mock.calls.DetectResonance = append(mock.calls.DetectResonance, callInfo)
	mock.lockDetectResonance.Unlock()
	return mock.DetectResonanceFunc(ctx)
}

func (mock *emergentServiceMock) DetectResonanceCalls() []struct {
	Ctx context.Context
} {
	mock.lockDetectResonance.RLock()
	calls := mock.calls.DetectResonance
	mock.lockDetectResonance.RUnlock()
	return calls
}

func (mock *emergentServiceMock) RunMissions(ctx context.Context) (*domain.Mission, error) {
	if mock.RunMissionsFunc == nil {
		panic("emergentServiceMock.RunMissionsFunc: method is nil but emergentService.RunMissions was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockRunMissions.Lock()
	mock.calls.RunMissions = append(mock.calls.RunMissions, callInfo)
	mock.lockRunMissions.Unlock()
	return mock.RunMissionsFunc(ctx)
}

func (mock *emergentServiceMock) RunMissionsCalls() []struct {
	Ctx context.Context
} {
	mock.lockRunMissions.RLock()
	calls := mock.calls.RunMissions
	mock.lockRunMissions.RUnlock()
	return calls
}

func (mock *emergentServiceMock) RunChallenges(ctx context.Context) ([]*domain.Challenge, error) {
	if mock.RunChallengesFunc == nil {
		panic("emergentServiceMock.RunChallengesFunc: method is nil but emergentService.RunChallenges was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockRunChallenges.Lock()
	mock.calls.RunChallenges = append(mock.calls.RunChallenges, callInfo)
	mock.lockRunChallenges.Unlock()
	return mock.RunChallengesFunc(ctx)
}

func (mock *emergentServiceMock) RunChallengesCalls() []struct {
	Ctx context.Context
} {
	mock.lockRunChallenges.RLock()
	calls := mock.calls.RunChallenges
	mock.lockRunChallenges.RUnlock()
	return calls
}

func (mock *emergentServiceMock) ExtractKnowledge(ctx context.Context, postID uuid.UUID) ([]*domain.KnowledgeEdge, error) {
	if mock.ExtractKnowledgeFunc == nil {
		panic("emergentServiceMock.ExtractKnowledgeFunc: method is nil but emergentService.ExtractKnowledge was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		PostID uuid.UUID
	}{Ctx: ctx, PostID: postID}
	mock.lockExtractKnowledge.Lock()
	mock.calls.ExtractKnowledge = append(mock.calls.ExtractKnowledge, callInfo)
	mock.lockExtractKnowledge.Unlock()
	return mock.ExtractKnowledgeFunc(ctx, postID)
}

func (mock *emergentServiceMock) ExtractKnowledgeCalls() []struct {
	Ctx    context.Context
	PostID uuid.UUID
} {
	mock.lockExtractKnowledge.RLock()
	calls := mock.calls.ExtractKnowledge
	mock.lockExtractKnowledge.RUnlock()
	return calls
}

func (mock *emergentServiceMock) ScheduleCapsule(ctx context.Context, postID uuid.UUID) (*domain.TimeCapsule, error) {
	if mock.ScheduleCapsuleFunc == nil {
		panic("emergentServiceMock.ScheduleCapsuleFunc: method is nil but emergentService.ScheduleCapsule was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		PostID uuid.UUID
	}{Ctx: ctx, PostID: postID}
	mock.lockScheduleCapsule.Lock()
	mock.calls.ScheduleCapsule = append(mock.calls.ScheduleCapsule, callInfo)
	mock.lockScheduleCapsule.Unlock()
	return mock.ScheduleCapsuleFunc(ctx, postID)
}

func (mock *emergentServiceMock) ScheduleCapsuleCalls() []struct {
	Ctx    context.Context
	PostID uuid.UUID
} {
	mock.lockScheduleCapsule.RLock()
	calls := mock.calls.ScheduleCapsule
	mock.lockScheduleCapsule.RUnlock()
	return calls
}
