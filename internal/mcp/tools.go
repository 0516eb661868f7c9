package mcp

import "github.com/mark3labs/mcp-go/mcp"

var listToolDef = mcp.NewTool("flashcard_list",
	mcp.WithDescription("List flashcards in collection order, optionally narrowed by subject and a case-insensitive search over front and back. Each item carries its position in the full collection."),
	mcp.WithString("subject", mcp.Description("Subject to filter by. Empty or \"All\" lists every subject.")),
	mcp.WithString("search", mcp.Description("Substring to match against front or back, ignoring case.")),
	mcp.WithNumber("limit", mcp.Description("Maximum items to return (default 50, max 500).")),
	mcp.WithNumber("offset", mcp.Description("Items to skip for pagination.")),
	mcp.WithReadOnlyHintAnnotation(true),
)

var subjectsToolDef = mcp.NewTool("flashcard_subjects",
	mcp.WithDescription("List the distinct subjects in the collection, sorted, with a flashcard count for each."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var groupsToolDef = mcp.NewTool("flashcard_groups",
	mcp.WithDescription("Group flashcards by subject. Groups appear in the order their subject first occurs."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var createToolDef = mcp.NewTool("flashcard_create",
	mcp.WithDescription("Append a flashcard to the end of the collection. All three fields must contain non-whitespace text. The back may use markdown and TeX."),
	mcp.WithString("subject", mcp.Required(), mcp.Description("Subject label, trimmed before saving.")),
	mcp.WithString("front", mcp.Required(), mcp.Description("Question side.")),
	mcp.WithString("back", mcp.Required(), mcp.Description("Answer side.")),
	mcp.WithReadOnlyHintAnnotation(false),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithIdempotentHintAnnotation(false),
)

var deleteToolDef = mcp.NewTool("flashcard_delete",
	mcp.WithDescription("Delete the flashcard at a position in the full collection. Later flashcards shift down by one."),
	mcp.WithNumber("position", mcp.Required(), mcp.Description("Zero-based position, as reported by flashcard_list.")),
	mcp.WithDestructiveHintAnnotation(true),
	mcp.WithIdempotentHintAnnotation(false),
)

var deleteAllToolDef = mcp.NewTool("flashcard_delete_all",
	mcp.WithDescription("Delete every flashcard. Requires confirm=true."),
	mcp.WithBoolean("confirm", mcp.Required(), mcp.Description("Must be true.")),
	mcp.WithDestructiveHintAnnotation(true),
	mcp.WithIdempotentHintAnnotation(true),
)

var exportToolDef = mcp.NewTool("flashcard_export",
	mcp.WithDescription("Write the whole collection to a JSON or YAML file. Defaults to a timestamped file in the exports directory."),
	mcp.WithString("path", mcp.Description("Destination file (.json, .yaml or .yml).")),
	mcp.WithString("format", mcp.Description("Output format; inferred from path when omitted."), mcp.Enum("json", "yaml")),
	mcp.WithReadOnlyHintAnnotation(false),
	mcp.WithDestructiveHintAnnotation(false),
)

var importToolDef = mcp.NewTool("flashcard_import",
	mcp.WithDescription("Load flashcards from a JSON or YAML file. Every flashcard is validated before anything is saved."),
	mcp.WithString("path", mcp.Required(), mcp.Description("Source file (.json, .yaml or .yml).")),
	mcp.WithString("format", mcp.Description("Input format; inferred from path when omitted."), mcp.Enum("json", "yaml")),
	mcp.WithString("mode", mcp.Description("append (default) adds after existing flashcards; replace discards them."), mcp.Enum("append", "replace")),
	mcp.WithDestructiveHintAnnotation(true),
)
