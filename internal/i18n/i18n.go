// Package i18n provides the user-visible message catalog. The original tool
// shipped English and Korean strings selected via LANG; a config override
// takes precedence.
package i18n

import (
	"os"
	"strings"
)

// Language identifies a supported message catalog.
type Language int

const (
	English Language = iota
	Korean
)

// Parse maps a config override to a Language. Empty or unknown values fall
// back to environment detection.
func Parse(override string) Language {
	switch strings.ToLower(override) {
	case "ko":
		return Korean
	case "en":
		return English
	default:
		return Detect()
	}
}

// Detect sniffs LANG for a Korean locale, defaulting to English.
func Detect() Language {
	if strings.HasPrefix(os.Getenv("LANG"), "ko") {
		return Korean
	}
	return English
}

// Messages resolves catalog strings for one language.
type Messages struct {
	lang Language
}

// New returns a catalog for the detected language.
func New() *Messages {
	return &Messages{lang: Detect()}
}

// ForLanguage returns a catalog for an explicit language.
func ForLanguage(lang Language) *Messages {
	return &Messages{lang: lang}
}

func (m *Messages) pick(en, ko string) string {
	if m.lang == Korean {
		return ko
	}
	return en
}

func (m *Messages) SelectProject() string {
	return m.pick("Select Project", "프로젝트 선택")
}

func (m *Messages) NoProjectsFound() string {
	return m.pick("No projects found in database.", "데이터베이스에 프로젝트가 없습니다.")
}

func (m *Messages) NavigateToGitRepo() string {
	return m.pick("Navigate to a git repository and run 'wtman' to add it.",
		"git 저장소로 이동한 후 'wtman'을 실행하여 추가하세요.")
}

func (m *Messages) SelectOrCreateWorktree() string {
	return m.pick("Select or Create Worktree", "워크트리 선택 또는 생성")
}

func (m *Messages) SwitchingToProject() string {
	return m.pick("Switching to project:", "프로젝트로 전환:")
}

func (m *Messages) SwitchingToWorktree() string {
	return m.pick("Switching to worktree:", "워크트리로 전환:")
}

func (m *Messages) CreatingNewWorktree() string {
	return m.pick("Creating new worktree:", "새 워크트리 생성:")
}

func (m *Messages) WorktreeExists() string {
	return m.pick("Worktree already exists for branch", "이미 워크트리가 있는 브랜치:")
}

func (m *Messages) AddingWorktree() string {
	return m.pick("Adding worktree for branch", "브랜치의 워크트리 추가:")
}

func (m *Messages) BranchNotFound() string {
	return m.pick("Branch not found, creating new branch", "브랜치가 없어 새로 생성합니다")
}

func (m *Messages) WorktreeReady() string {
	return m.pick("Worktree ready at:", "워크트리 준비 완료:")
}

func (m *Messages) SwitchHint() string {
	return m.pick("To switch to this worktree, run:", "이 워크트리로 전환하려면 다음을 실행하세요:")
}

func (m *Messages) DeletingWorktree() string {
	return m.pick("Deleting worktree:", "워크트리 삭제:")
}

func (m *Messages) WorktreeDeleted() string {
	return m.pick("Worktree deleted successfully", "워크트리가 성공적으로 삭제되었습니다")
}

func (m *Messages) CannotDeleteMain() string {
	return m.pick("Cannot delete main worktree", "메인 워크트리는 삭제할 수 없습니다")
}

func (m *Messages) UncommittedChangesTip() string {
	return m.pick("Tip: The worktree may have uncommitted changes.",
		"팁: 워크트리에 커밋되지 않은 변경사항이 있을 수 있습니다.")
}

func (m *Messages) SetupDone() string {
	return m.pick("Setup completed successfully", "설정이 성공적으로 완료되었습니다")
}

func (m *Messages) SetupWarning() string {
	return m.pick("Warning: setup completed with issues", "경고: 설정이 문제와 함께 완료되었습니다")
}

func (m *Messages) HelpKeys() string {
	return m.pick("Type to search · Enter: Select · Ctrl+B: Create · Ctrl+X: Delete · Esc: Cancel",
		"검색어 입력 · Enter: 선택 · Ctrl+B: 생성 · Ctrl+X: 삭제 · Esc: 취소")
}

func (m *Messages) HelpKeysSelectOnly() string {
	return m.pick("Type to search · Enter: Select · Esc: Cancel",
		"검색어 입력 · Enter: 선택 · Esc: 취소")
}
