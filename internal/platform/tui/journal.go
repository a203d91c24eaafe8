package tui

import (
	"github.com/vovakirdan/tui-mergeball/internal/games/merge"
	"github.com/vovakirdan/tui-mergeball/internal/storage"
)

// Recorder is implemented by games that keep a replayable drop journal.
type Recorder interface {
	Journal() merge.Journal
}

// Resizer is implemented by games that can follow a terminal resize without
// restarting the session.
type Resizer interface {
	Resize(screenW, screenH int)
}

// RunFromJournal converts a game journal to a storable run.
func RunFromJournal(j merge.Journal) storage.Run {
	drops := make([]storage.Drop, len(j.Drops))
	for i, d := range j.Drops {
		drops[i] = storage.Drop{Tick: d.Tick, X: d.X}
	}
	return storage.Run{
		GameID:    j.GameID,
		Seed:      j.Seed,
		Ticks:     j.Ticks,
		DropCount: len(drops),
		Drops:     drops,
	}
}

// JournalFromRun converts a stored run back to a replayable journal.
func JournalFromRun(r storage.Run) merge.Journal {
	drops := make([]merge.Drop, len(r.Drops))
	for i, d := range r.Drops {
		drops[i] = merge.Drop{Tick: d.Tick, X: d.X}
	}
	return merge.Journal{
		GameID: r.GameID,
		Seed:   r.Seed,
		Ticks:  r.Ticks,
		Drops:  drops,
	}
}

// saveRun stores the game's journal when the game records one and at least
// one ball was dropped. It returns the new run id, or 0 when nothing was saved.
func saveRun(store *storage.Store, game any) (int64, error) {
	rec, ok := game.(Recorder)
	if store == nil || !ok {
		return 0, nil
	}
	j := rec.Journal()
	if len(j.Drops) == 0 {
		return 0, nil
	}
	return store.SaveRun(RunFromJournal(j))
}
