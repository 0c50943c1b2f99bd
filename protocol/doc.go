// Package protocol defines the textual conventions shared between the
// conversation loop and the controlling model.
//
// It contains two things:
//
//   - Conversation message shapes ([Role], [Message]) used for the
//     transcript exchanged with model clients.
//
//   - Pure parsing functions that recognize the three directive forms a
//     model reply may carry: fenced executable code blocks tagged "repl"
//     ([CodeBlocks]), a literal final-answer directive (FINAL), and a
//     named-variable final-answer directive (FINAL_VAR), both recognized
//     by [FinalAnswer].
//
// The exact token spellings (the ```repl fence tag, FINAL( and FINAL_VAR()
// are a protocol contract between this module and the instructions given to
// the model. They must remain stable; changing them breaks every prompt that
// references them.
//
// All functions in this package are pure: they take text and return parsed
// structure without touching any session or network state.
package protocol
