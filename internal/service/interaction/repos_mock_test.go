package interaction

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dkims/agentopia/internal/domain"
)

var _ agentRepo = &agentRepoMock{}

type agentRepoMock struct {
	GetByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.Agent, error)
	ListWithValidTokensFunc func(ctx context.Context, now time.Time) ([]*domain.Agent, error)
	TouchLastActiveFunc     func(ctx context.Context, id uuid.UUID) error

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListWithValidTokens []struct {
			Ctx context.Context
			Now time.Time
		}
		TouchLastActive []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID             sync.RWMutex
	lockListWithValidTokens sync.RWMutex
	lockTouchLastActive     sync.RWMutex
}

func (mock *agentRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Agent, error) {
	if mock.GetByIDFunc == nil {
		panic("agentRepoMock.GetByIDFunc: method is nil but agentRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *agentRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
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

func (mock *agentRepoMock) TouchLastActive(ctx context.Context, id uuid.UUID) error {
	if mock.TouchLastActiveFunc == nil {
		panic("agentRepoMock.TouchLastActiveFunc: method is nil but agentRepo.TouchLastActive was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockTouchLastActive.Lock()
	mock.calls.TouchLastActive = append(mock.calls.TouchLastActive, callInfo)
	mock.lockTouchLastActive.Unlock()
	return mock.TouchLastActiveFunc(ctx, id)
}

func (mock *agentRepoMock) TouchLastActiveCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockTouchLastActive.RLock()
	calls := mock.calls.TouchLastActive
	mock.lockTouchLastActive.RUnlock()
	return calls
}

var _ postRepo = &postRepoMock{}

type postRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *postRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	if mock.GetByIDFunc == nil {
		panic("postRepoMock.GetByIDFunc: method is nil but postRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *postRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

var _ commentRepo = &commentRepoMock{}

type commentRepoMock struct {
	CreateFunc              func(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	ListTopLevelByPostFunc  func(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)
	ExistsReplyByAuthorFunc func(ctx context.Context, parentID, authorID uuid.UUID) (bool, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			C   *domain.Comment
		}
		ListTopLevelByPost []struct {
			Ctx    context.Context
			PostID uuid.UUID
		}
		ExistsReplyByAuthor []struct {
			Ctx      context.Context
			ParentID uuid.UUID
			AuthorID uuid.UUID
		}
	}
	lockCreate              sync.RWMutex
	lockListTopLevelByPost  sync.RWMutex
	lockExistsReplyByAuthor sync.RWMutex
}

func (mock *commentRepoMock) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	if mock.CreateFunc == nil {
		panic("commentRepoMock.CreateFunc: method is nil but commentRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   *domain.Comment
	}{Ctx: ctx, C: c}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, c)
}

func (mock *commentRepoMock) CreateCalls() []struct {
	Ctx context.Context
	C   *domain.Comment
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *commentRepoMock) ListTopLevelByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	if mock.ListTopLevelByPostFunc == nil {
		panic("commentRepoMock.ListTopLevelByPostFunc: method is nil but commentRepo.ListTopLevelByPost was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		PostID uuid.UUID
	}{Ctx: ctx, PostID: postID}
	mock.lockListTopLevelByPost.Lock()
	mock.calls.ListTopLevelByPost = append(mock.calls.ListTopLevelByPost, callInfo)
	mock.lockListTopLevelByPost.Unlock()
	return mock.ListTopLevelByPostFunc(ctx, postID)
}

func (mock *commentRepoMock) ListTopLevelByPostCalls() []struct {
	Ctx    context.Context
	PostID uuid.UUID
} {
	mock.lockListTopLevelByPost.RLock()
	calls := mock.calls.ListTopLevelByPost
	mock.lockListTopLevelByPost.RUnlock()
	return calls
}

func (mock *commentRepoMock) ExistsReplyByAuthor(ctx context.Context, parentID, authorID uuid.UUID) (bool, error) {
	if mock.ExistsReplyByAuthorFunc == nil {
		panic("commentRepoMock.ExistsReplyByAuthorFunc: method is nil but commentRepo.ExistsReplyByAuthor was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ParentID uuid.UUID
		AuthorID uuid.UUID
	}{Ctx: ctx, ParentID: parentID, AuthorID: authorID}
	mock.lockExistsReplyByAuthor.Lock()
	mock.calls.ExistsReplyByAuthor = append(mock.calls.ExistsReplyByAuthor, callInfo)
	mock.lockExistsReplyByAuthor.Unlock()
	return mock.ExistsReplyByAuthorFunc(ctx, parentID, authorID)
}

func (mock *commentRepoMock) ExistsReplyByAuthorCalls() []struct {
	Ctx      context.Context
	ParentID uuid.UUID
	AuthorID uuid.UUID
} {
	mock.lockExistsReplyByAuthor.RLock()
	calls := mock.calls.ExistsReplyByAuthor
	mock.lockExistsReplyByAuthor.RUnlock()
	return calls
}

var _ snapshotRepo = &snapshotRepoMock{}

type snapshotRepoMock struct {
	CreateFunc func(ctx context.Context, s *domain.OpinionSnapshot) (*domain.OpinionSnapshot, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			S   *domain.OpinionSnapshot
		}
	}
	lockCreate sync.RWMutex
}

func (mock *snapshotRepoMock) Create(ctx context.Context, s *domain.OpinionSnapshot) (*domain.OpinionSnapshot, error) {
	if mock.CreateFunc == nil {
		panic("snapshotRepoMock.CreateFunc: method is nil but snapshotRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   *domain.OpinionSnapshot
	}{Ctx: ctx, S: s}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, s)
}

func (mock *snapshotRepoMock) CreateCalls() []struct {
	Ctx context.Context
	S   *domain.OpinionSnapshot
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

var _ relationRepo = &relationRepoMock{}

type relationRepoMock struct {
	UpsertFunc func(ctx context.Context, fromID, toID uuid.UUID, similarity float64) (*domain.Relation, error)

	calls struct {
		Upsert []struct {
			Ctx        context.Context
			FromID     uuid.UUID
			ToID       uuid.UUID
			Similarity float64
		}
	}
	lockUpsert sync.RWMutex
}

func (mock *relationRepoMock) Upsert(ctx context.Context, fromID, toID uuid.UUID, similarity float64) (*domain.Relation, error) {
	if mock.UpsertFunc == nil {
		panic("relationRepoMock.UpsertFunc: method is nil but relationRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		FromID     uuid.UUID
		ToID       uuid.UUID
		Similarity float64
	}{Ctx: ctx, FromID: fromID, ToID: toID, Similarity: similarity}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, fromID, toID, similarity)
}

func (mock *relationRepoMock) UpsertCalls() []struct {
	Ctx        context.Context
	FromID     uuid.UUID
	ToID       uuid.UUID
	Similarity float64
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}
