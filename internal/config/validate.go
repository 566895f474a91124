package config

import "fmt"

// Validate checks cross-field constraints that tags cannot express.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is empty")
	}
	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("database.max_conns (%d) below min_conns (%d)",
			c.Database.MaxConns, c.Database.MinConns)
	}
	if err := c.Simulation.validate(); err != nil {
		return err
	}
	return nil
}

func (s *SimulationConfig) validate() error {
	for name, p := range map[string]float64{
		"topic_discovery_prob": s.TopicDiscoveryProb,
		"deep_research_prob":   s.DeepResearchProb,
		"participation_prob":   s.ParticipationProb,
		"mission_prob":         s.MissionProb,
		"challenge_prob":       s.ChallengeProb,
		"capsule_prob":         s.CapsuleProb,
		"whisper_prob":         s.WhisperProb,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("simulation.%s out of range: %g", name, p)
		}
	}
	if s.QualityThreshold < 1 || s.QualityThreshold > 10 {
		return fmt.Errorf("simulation.quality_threshold out of range: %d", s.QualityThreshold)
	}
	if s.MaxCommenters < 0 {
		return fmt.Errorf("simulation.max_commenters negative: %d", s.MaxCommenters)
	}
	if s.MissionSize < 1 {
		return fmt.Errorf("simulation.mission_size must be positive: %d", s.MissionSize)
	}
	if s.SyncBudget <= 0 {
		return fmt.Errorf("simulation.sync_budget must be positive: %s", s.SyncBudget)
	}
	return nil
}
