package sessions

import (
	"errors"
	"log/slog"
	"os"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/iammorganparry/clive/apps/uigen/internal/models"
	"github.com/iammorganparry/clive/apps/uigen/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestPersistenceRoundTrip(t *testing.T) {
	snapshots, err := store.NewFileSnapshots(t.TempDir())
	if err != nil {
		t.Fatalf("new file snapshots: %v", err)
	}

	live := NewStore(1)
	live.GetOrCreate("sess")
	live.AppendAndTrim("sess", models.RoleAssistant, `{"code":"X","explanation":"Y"}`)
	live.SetArtifact("sess", "X")

	NewPersistence(live, snapshots, testLogger()).Save("sess")

	fresh := NewStore(1)
	p := NewPersistence(fresh, snapshots, testLogger())
	if !p.Load("sess") {
		t.Fatal("expected load to succeed")
	}

	want, _ := live.Snapshot("sess")
	got, _ := fresh.Snapshot("sess")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestPersistenceLoadMissing(t *testing.T) {
	snapshots, _ := store.NewFileSnapshots(t.TempDir())
	s := NewStore(1)
	if NewPersistence(s, snapshots, testLogger()).Load("absent") {
		t.Fatal("expected load of missing snapshot to fail")
	}
	if s.Exists("absent") {
		t.Fatal("failed load must not create a session")
	}
}

func TestPersistenceLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	snapshots, _ := store.NewFileSnapshots(dir)
	if err := os.WriteFile(snapshots.Path("broken"), []byte("]]"), 0o644); err != nil {
		t.Fatal(err)
	}

	if NewPersistence(NewStore(1), snapshots, testLogger()).Load("broken") {
		t.Fatal("expected load of malformed snapshot to fail")
	}
}

type failingSnapshots struct {
	store.Snapshots
	saves int
}

func (f *failingSnapshots) Save(string, *models.Snapshot) error {
	f.saves++
	return errors.New("disk full")
}

func TestPersistenceSaveSwallowsErrors(t *testing.T) {
	s := NewStore(1)
	s.GetOrCreate("a")
	f := &failingSnapshots{}
	p := NewPersistence(s, f, testLogger())

	p.Save("a")
	p.SaveAsync("a")
	p.Wait()

	if f.saves != 2 {
		t.Fatalf("expected 2 save attempts, got %d", f.saves)
	}
}

func TestSaveAsyncCapturesStateAtCall(t *testing.T) {
	snapshots, _ := store.NewFileSnapshots(t.TempDir())
	s := NewStore(1)
	s.GetOrCreate("a")
	s.SetArtifact("a", "v1")

	p := NewPersistence(s, snapshots, testLogger())
	p.SaveAsync("a")
	s.SetArtifact("a", "v2")
	p.Wait()

	snap, err := snapshots.Load("a")
	if err != nil || snap == nil {
		t.Fatalf("load: %v", err)
	}
	if snap.Component != "v1" {
		t.Fatalf("expected snapshot taken at call time, got %q", snap.Component)
	}
}

// slowSnapshots delays saves of one component value.
type slowSnapshots struct {
	store.Snapshots
	slow  string
	delay time.Duration

	mu     sync.Mutex
	writes []string
}

func (s *slowSnapshots) Save(id string, snap *models.Snapshot) error {
	if snap.Component == s.slow {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	s.writes = append(s.writes, snap.Component)
	s.mu.Unlock()
	return s.Snapshots.Save(id, snap)
}

func TestSaveAsyncNewerWriteWins(t *testing.T) {
	files, err := store.NewFileSnapshots(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	slow := &slowSnapshots{Snapshots: files, slow: "v1", delay: 50 * time.Millisecond}

	s := NewStore(1)
	s.GetOrCreate("a")
	p := NewPersistence(s, slow, testLogger())

	s.SetArtifact("a", "v1")
	p.SaveAsync("a")
	s.SetArtifact("a", "v2")
	p.SaveAsync("a")
	p.Wait()

	snap, err := files.Load("a")
	if err != nil || snap == nil {
		t.Fatalf("load: %v", err)
	}
	if snap.Component != "v2" {
		t.Fatalf("expected newest snapshot to win, got %q (writes %v)", snap.Component, slow.writes)
	}
	if last := slow.writes[len(slow.writes)-1]; last != "v2" {
		t.Fatalf("expected v2 written last, got %v", slow.writes)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.slots) != 0 {
		t.Fatalf("expected write slots released, got %d", len(p.slots))
	}
}

func TestPersistenceLoadRejectsUnknownRole(t *testing.T) {
	snapshots, _ := store.NewFileSnapshots(t.TempDir())
	if err := snapshots.Save("odd", &models.Snapshot{
		History:   []models.Message{{Role: "system", Text: "injected"}},
		Component: "X",
	}); err != nil {
		t.Fatal(err)
	}

	s := NewStore(1)
	if NewPersistence(s, snapshots, testLogger()).Load("odd") {
		t.Fatal("expected snapshot with unknown role to be rejected")
	}
	if s.Exists("odd") {
		t.Fatal("rejected snapshot must not be restored")
	}
}
