// Package tui provides the interactive prompts of a bookminer session.
//
// Each prompt is a small bubbletea model run by its own program:
//
//   - SelectModel: single-choice list returning an index
//   - TagPickerModel: multi-select list with an inline text entry
//   - ConfirmModel: yes/no dialog
//
// A Terminal owns the controlling terminal. Every prompt acquires it for the
// lifetime of one program, and external processes such as the editor are
// only started through Terminal.Exec once no program holds it. Prompter
// composes the three prompts behind the interface the workflow consumes.
package tui
