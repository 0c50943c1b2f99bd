// Package exec provides a unified facade for recursive completions.
//
// The exec package wires the pieces of the module together: the
// yaegi-backed execution engine, the session around it, the model
// clients, the nested-query bridge, and the conversation loop. Instead
// of assembling those packages directly, users create an [Exec]
// instance and ask it questions about a context:
//
//	client := scripted.New("root-model") // or gemini.New(...)
//
//	executor, err := exec.New(exec.Options{Client: client})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer executor.Reset()
//
//	answer, err := executor.Completion(ctx, hugeDocument,
//	    "what is the magic number mentioned near the end?")
//
// The root model never sees the context directly. It is bound to a
// variable inside a persistent session, and the model inspects it by
// submitting fenced code blocks that the facade executes and reports
// back on, iteration by iteration, until the model declares a final
// answer.
//
// # Nested queries
//
// Code running inside the session can call llmQuery to delegate a
// sub-question to a model. By default the root client serves these; set
// Options.RecursiveClient to route them to a cheaper model.
package exec
