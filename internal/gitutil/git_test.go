package gitutil

import "testing"

func TestParseWorktreeList(t *testing.T) {
	out := "worktree /repos/app\n" +
		"HEAD 1111111111111111111111111111111111111111\n" +
		"branch refs/heads/main\n" +
		"\n" +
		"worktree /home/u/_wtman/app_ab12cd34/feature-x\n" +
		"HEAD 2222222222222222222222222222222222222222\n" +
		"branch refs/heads/feature-x\n" +
		"\n" +
		"worktree /home/u/_wtman/app_ab12cd34/spike\n" +
		"HEAD 3333333333333333333333333333333333333333\n" +
		"detached\n"

	got := parseWorktreeList(out)
	if len(got) != 3 {
		t.Fatalf("parsed %d worktrees, want 3", len(got))
	}
	if !got[0].IsMain || got[0].Branch != "main" || got[0].Path != "/repos/app" {
		t.Fatalf("main worktree parsed as %+v", got[0])
	}
	if got[1].IsMain || got[1].Branch != "feature-x" {
		t.Fatalf("linked worktree parsed as %+v", got[1])
	}
	if got[2].Branch != "(detached)" {
		t.Fatalf("detached worktree parsed as %+v", got[2])
	}
}

func TestParseWorktreeListEmpty(t *testing.T) {
	if got := parseWorktreeList(""); len(got) != 0 {
		t.Fatalf("parsed %d worktrees from empty output, want 0", len(got))
	}
}
