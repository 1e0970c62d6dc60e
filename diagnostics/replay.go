// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package diagnostics

// ReplaySchemaVersion is the schema_version stamped into every replay
// session export.
const ReplaySchemaVersion = "diag.replay_session.v1"

// ReplayVersion is the recorder's own format version, independent of
// the envelope schema.
const ReplayVersion = 1

// Command is one recorded input event, captured before it was
// dispatched to the game module.
type Command struct {
	Tick    uint64         `json:"tick"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

// Checkpoint is a periodic module state-hash sample.
type Checkpoint struct {
	Tick uint64 `json:"tick"`
	Hash any    `json:"hash"`
}

// ReplayManifest is the JSON shape produced by Export.
type ReplayManifest struct {
	SchemaVersion string       `json:"schema_version"`
	ReplayVersion int          `json:"replay_version"`
	Seed          string       `json:"seed"`
	BuildInfo     string       `json:"build_info"`
	Commands      []Command    `json:"commands"`
	StateHashes   []Checkpoint `json:"state_hashes"`
	CommandCount  int          `json:"command_count"`
	FirstTick     uint64       `json:"first_tick"`
	LastTick      uint64       `json:"last_tick"`
}

// Recorder captures input commands and periodic state-hash
// checkpoints for deterministic replay. When disabled, every method
// is a no-op — the host can always call them unconditionally.
type Recorder struct {
	enabled      bool
	seed         string
	buildInfo    string
	hashInterval int

	hub *Hub

	commands    []Command
	checkpoints []Checkpoint
}

// NewRecorder returns a Recorder. hashInterval < 1 is treated as 1.
func NewRecorder(enabled bool, seed, buildInfo string, hashInterval int, hub *Hub) *Recorder {
	if hashInterval < 1 {
		hashInterval = 1
	}
	return &Recorder{enabled: enabled, seed: seed, buildInfo: buildInfo, hashInterval: hashInterval, hub: hub}
}

// RecordCommand appends a command. No-op when the recorder is
// disabled.
func (r *Recorder) RecordCommand(tick uint64, kind string, payload map[string]any) {
	if !r.enabled {
		return
	}
	r.commands = append(r.commands, Command{Tick: tick, Type: kind, Payload: payload})
	if r.hub != nil {
		r.hub.EmitFast("replay", "command", tick, LevelInfo, payload, map[string]any{"type": kind})
	}
}

// IsCheckpointTick reports whether tick falls on a checkpoint
// boundary, so the host can decide whether it is worth invoking the
// module's (possibly expensive) state-hash hook before calling
// MarkFrame.
func (r *Recorder) IsCheckpointTick(tick uint64) bool {
	return r.enabled && tick%uint64(r.hashInterval) == 0
}

// MarkFrame appends a checkpoint for tick. No-op when the recorder is
// disabled.
func (r *Recorder) MarkFrame(tick uint64, hash any) {
	if !r.enabled {
		return
	}
	r.checkpoints = append(r.checkpoints, Checkpoint{Tick: tick, Hash: hash})
	if r.hub != nil {
		r.hub.EmitFast("replay", "state_hash", tick, LevelInfo, hash, nil)
	}
}

// Export produces the replay manifest for everything recorded so far.
func (r *Recorder) Export() ReplayManifest {
	m := ReplayManifest{
		SchemaVersion: ReplaySchemaVersion,
		ReplayVersion: ReplayVersion,
		Seed:          r.seed,
		BuildInfo:     r.buildInfo,
		Commands:      append([]Command(nil), r.commands...),
		StateHashes:   append([]Checkpoint(nil), r.checkpoints...),
		CommandCount:  len(r.commands),
	}
	if len(r.commands) > 0 {
		m.FirstTick = r.commands[0].Tick
		m.LastTick = r.commands[len(r.commands)-1].Tick
	}
	return m
}
