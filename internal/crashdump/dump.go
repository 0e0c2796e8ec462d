package crashdump

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// Increment when the payload format changes so stale dumps are rejected
// instead of misread.
const dumpSchemaVersion uint16 = 1

// DumpFileName is the fixed name of the latest dump inside DumpDir.
const DumpFileName = "latest.dump"

type dumpPayload struct {
	Schema    uint16
	CreatedAt time.Time
	Count     uint32
	Entries   []Entry
}

// DumpDir resolves the dump directory under the user cache root, creating
// it if needed.
func DumpDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// WriteDump persists the recorder's current snapshot to path as a
// schema-versioned msgpack payload. The write goes through a temp file and
// rename so a crash mid-write never leaves a torn dump.
func (r *Recorder) WriteDump(path string) error {
	entries := r.Snapshot()
	count, err := safecast.Conv[uint32](len(entries))
	if err != nil {
		return fmt.Errorf("dump entry count: %w", err)
	}
	payload := dumpPayload{
		Schema:    dumpSchemaVersion,
		CreatedAt: time.Now(),
		Count:     count,
		Entries:   entries,
	}

	data, err := msgpack.Marshal(&payload)
	if err != nil {
		return fmt.Errorf("encode dump: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write dump: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("commit dump: %w", err)
	}
	return nil
}

// ReadDump loads a dump written by WriteDump. Dumps with an unknown schema
// are rejected.
func ReadDump(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var payload dumpPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode dump: %w", err)
	}
	if payload.Schema != dumpSchemaVersion {
		return nil, fmt.Errorf("dump schema %d not supported (want %d)", payload.Schema, dumpSchemaVersion)
	}
	if int(payload.Count) != len(payload.Entries) {
		return nil, fmt.Errorf("dump truncated: header says %d entries, found %d", payload.Count, len(payload.Entries))
	}
	return payload.Entries, nil
}
