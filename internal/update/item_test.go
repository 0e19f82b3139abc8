package update

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/todosync/internal/model"
)

func TestItemEditorSyncOnlyOnAuthoritativeChange(t *testing.T) {
	task := model.Task{ID: 4, UserID: testUser, Title: "plan trip"}
	ed := NewItemEditor(task)
	ed.Checked = true

	ed = ed.Sync(task)
	if !ed.Checked {
		t.Fatal("unchanged completed value must not overwrite the mirror")
	}
	task.Completed = true
	ed = ed.Sync(task)
	task.Completed = false
	ed = ed.Sync(task)
	if ed.Checked {
		t.Fatal("expected mirror resynced after completed changed")
	}
}

func TestItemEditorToggleOutcomes(t *testing.T) {
	ed := NewItemEditor(model.Task{ID: 4, Title: "plan trip"})
	ed, out := ed.ToggleCheck()
	if !ed.Checked || !out.Acquire || out.Patch == nil || out.Patch.Completed == nil || !*out.Patch.Completed {
		t.Fatalf("unexpected toggle outcome %+v", out)
	}
	if out.Patch.Title != nil {
		t.Fatal("toggle must only patch completed")
	}

	failed, out := ed.ToggleSettled(true, model.Task{}, errors.New("boom"))
	if failed.Checked || out.Err != model.ErrorUpdateFailed || out.Reload || !out.Release {
		t.Fatalf("unexpected failure outcome %+v checked=%v", out, failed.Checked)
	}

	ok, out := ed.ToggleSettled(true, model.Task{ID: 4, Completed: true}, nil)
	if !ok.Checked || !out.Reload || !out.Release || out.Err != "" {
		t.Fatalf("unexpected success outcome %+v", out)
	}
}

func TestItemEditorCommitOutcomes(t *testing.T) {
	ed := NewItemEditor(model.Task{ID: 4, Title: "plan trip"})
	if _, out := ed.CommitEdit(); out != (ItemOutcome{}) {
		t.Fatalf("commit outside edit mode must be a no-op, got %+v", out)
	}

	ed = ed.EnterEdit("   ")
	cleared, out := ed.CommitEdit()
	if !out.Delete || out.Patch != nil || out.Acquire {
		t.Fatalf("expected delete delegation, got %+v", out)
	}
	if !cleared.Editing || cleared.LocalBusy {
		t.Fatal("editor must stay in edit mode until the delete removes it")
	}

	ed = ed.EnterEdit("  plan trip to Oslo ")
	busy, out := ed.CommitEdit()
	if !busy.LocalBusy || !out.Acquire || out.Patch == nil || *out.Patch.Title != "plan trip to Oslo" {
		t.Fatalf("unexpected commit outcome %+v", out)
	}
	if _, again := busy.CommitEdit(); again != (ItemOutcome{}) {
		t.Fatal("second commit while busy must be ignored")
	}
	if still := busy.CancelEdit(); !still.Editing {
		t.Fatal("cancel must not interrupt an in-flight commit")
	}

	done, out := busy.EditSettled(nil)
	if done.Editing || done.LocalBusy || !out.Reload || !out.Release {
		t.Fatalf("unexpected settle outcome %+v", out)
	}
	done, out = busy.EditSettled(errors.New("boom"))
	if done.Editing || done.LocalBusy || out.Reload || out.Err != model.ErrorUpdateFailed {
		t.Fatalf("unexpected failed settle outcome %+v", out)
	}
}
