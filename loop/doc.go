// Package loop drives the conversation between a root model and an
// execution session.
//
// The Orchestrator owns the transcript. Each iteration it asks the root
// model for its next action, extracts fenced code blocks from the reply,
// runs them in the session, and folds the results back into the
// transcript. The run ends when the model emits a final-answer
// directive, either a literal FINAL(...) or FINAL_VAR(...) naming a
// session variable, or when the iteration budget runs out, in which
// case one last completion is requested and returned verbatim.
//
// The operations available inside the session are described as MCP tool
// shapes and rendered into the system prompt, so the capability surface
// the model reads matches what the session actually binds.
package loop
