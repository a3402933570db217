package repo

import (
	"time"
)

type Config struct {
	RepoRoot   string     `mapstructure:"-" toml:"-"`
	DialUrl    string     `mapstructure:"dial_url" toml:"dial_url"`
	QueryAddr  string     `mapstructure:"query_addr" toml:"query_addr"`
	Log        Log        `mapstructure:"log" toml:"log"`
	Governance Governance `mapstructure:"governance" toml:"governance"`
}

type Log struct {
	Level        string        `mapstructure:"level" toml:"level"`
	Filename     string        `mapstructure:"filename" toml:"filename"`
	ReportCaller bool          `mapstructure:"report_caller" toml:"report_caller"`
	MaxAge       time.Duration `mapstructure:"max_age" toml:"max_age"`
	RotationTime time.Duration `mapstructure:"rotation_time" toml:"rotation_time"`
}

type Governance struct {
	// phase lengths are measured in blocks, a deadline is the block the
	// phase started at plus the length
	SubmissionPhaseBlocks uint64 `mapstructure:"submission_phase_blocks" toml:"submission_phase_blocks"`
	DiscussionPhaseBlocks uint64 `mapstructure:"discussion_phase_blocks" toml:"discussion_phase_blocks"`
	VotingPhaseBlocks     uint64 `mapstructure:"voting_phase_blocks" toml:"voting_phase_blocks"`

	// integer percentages, 0-100
	QuorumThresholdPercent     uint64 `mapstructure:"quorum_threshold_percent" toml:"quorum_threshold_percent"`
	AcceptanceThresholdPercent uint64 `mapstructure:"acceptance_threshold_percent" toml:"acceptance_threshold_percent"`

	MaxMilestones int `mapstructure:"max_milestones" toml:"max_milestones"`
}

func DefaultConfig(repoRoot string) *Config {
	return &Config{
		RepoRoot:  repoRoot,
		DialUrl:   "ws://localhost:9991",
		QueryAddr: "127.0.0.1:8881",
		Log: Log{
			Level:        "info",
			Filename:     "governance.log",
			ReportCaller: false,
			MaxAge:       30 * 24 * time.Hour,
			RotationTime: 24 * time.Hour,
		},
		Governance: Governance{
			SubmissionPhaseBlocks:      100,
			DiscussionPhaseBlocks:      200,
			VotingPhaseBlocks:          300,
			QuorumThresholdPercent:     60,
			AcceptanceThresholdPercent: 60,
			MaxMilestones:              10,
		},
	}
}
