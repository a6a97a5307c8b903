// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the TUI.
package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jeranaias/sonnet-tui/internal/config"
)

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestIsCommand(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"/help", true},
		{"/model sonnet", true},
		{"  /help", true},
		{"hello", false},
		{"hello /help", false},
		{"", false},
		{"/", true},
	}

	for _, tc := range tests {
		got := IsCommand(tc.input)
		if got != tc.want {
			t.Errorf("IsCommand(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestExtractCommandName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/help", "/help"},
		{"/model sonnet", "/model"},
		{"/attach report.xlsx", "/attach"},
		{"  /help  ", "/help"},
		{"hello", ""},
		{"/", "/"},
	}

	for _, tc := range tests {
		got := ExtractCommandName(tc.input)
		if got != tc.want {
			t.Errorf("ExtractCommandName(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestGetPartialCommand(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/hel", "/hel"},
		{"/help", "/help"},
		{"/model ", ""},       // Space after command means complete
		{"/model sonnet", ""}, // Has arguments
		{"hello", ""},
	}

	for _, tc := range tests {
		got := GetPartialCommand(tc.input)
		if got != tc.want {
			t.Errorf("GetPartialCommand(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"/help", []string{"/help"}},
		{"/model sonnet", []string{"/model", "sonnet"}},
		{`/attach "my photo.png"`, []string{"/attach", "my photo.png"}},
		{`/attach 'my photo.png'`, []string{"/attach", "my photo.png"}},
		{"/config key value", []string{"/config", "key", "value"}},
	}

	for _, tc := range tests {
		got := ParseArgs(tc.input)
		if len(got) != len(tc.want) {
			t.Errorf("ParseArgs(%q) = %v, want %v", tc.input, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("ParseArgs(%q)[%d] = %q, want %q", tc.input, i, got[i], tc.want[i])
			}
		}
	}
}

// =============================================================================
// REGISTRY TESTS
// =============================================================================

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Should have built-in commands
	if len(r.commands) == 0 {
		t.Error("Registry should have built-in commands")
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	cmd := &Command{
		Name:        "/test",
		Aliases:     []string{"/t"},
		Description: "Test command",
	}

	r.Register(cmd)

	if r.Get("/test") == nil {
		t.Error("Should get command by name")
	}

	if r.Get("/t") == nil {
		t.Error("Should get command by alias")
	}
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()

	// Built-in commands
	if r.Get("/help") == nil {
		t.Error("/help command should exist")
	}

	if r.Get("/h") == nil {
		t.Error("/h alias should resolve to /help")
	}

	if r.Get("/?") == nil {
		t.Error("/? alias should resolve to /help")
	}

	if r.Get("/nonexistent") != nil {
		t.Error("/nonexistent should return nil")
	}
}

func TestRegistry_All(t *testing.T) {
	r := NewRegistry()
	all := r.All()

	if len(all) == 0 {
		t.Error("All() should return commands")
	}

	// Check that essential commands are present
	found := make(map[string]bool)
	for _, cmd := range all {
		found[cmd.Name] = true
	}

	essentials := []string{"/help", "/quit", "/clear", "/model", "/attach", "/detach"}
	for _, name := range essentials {
		if !found[name] {
			t.Errorf("Essential command %s not found in All()", name)
		}
	}
}

func TestRegistry_ByCategory(t *testing.T) {
	r := NewRegistry()
	byCategory := r.ByCategory()

	if len(byCategory) == 0 {
		t.Error("ByCategory() should return categories")
	}

	// Check that expected categories exist
	expectedCategories := []string{"Navigation", "Conversation", "Model", "Attachments"}
	for _, cat := range expectedCategories {
		if _, ok := byCategory[cat]; !ok {
			t.Errorf("Expected category %q not found", cat)
		}
	}

	// Hidden commands should not appear
	for _, cmds := range byCategory {
		for _, cmd := range cmds {
			if cmd.Hidden {
				t.Errorf("Hidden command %s should not appear in ByCategory()", cmd.Name)
			}
		}
	}
}

// =============================================================================
// PARSE TESTS
// =============================================================================

func TestParser_Parse(t *testing.T) {
	r := NewRegistry()
	p := NewParser(r)

	tests := []struct {
		input     string
		isCommand bool
		cmdName   string
		argsLen   int
	}{
		{"/help", true, "/help", 0},
		{"/model sonnet", true, "/model", 1},
		{"hello world", false, "", 0},
		{"/nonexistent", true, "/nonexistent", 0},
		{`/attach "my photo.png"`, true, "/attach", 1},
	}

	for _, tc := range tests {
		result := p.Parse(tc.input)

		if result.IsCommand != tc.isCommand {
			t.Errorf("Parse(%q).IsCommand = %v, want %v", tc.input, result.IsCommand, tc.isCommand)
		}

		if result.CommandName != tc.cmdName {
			t.Errorf("Parse(%q).CommandName = %q, want %q", tc.input, result.CommandName, tc.cmdName)
		}

		if len(result.Args) != tc.argsLen {
			t.Errorf("Parse(%q) args length = %d, want %d", tc.input, len(result.Args), tc.argsLen)
		}
	}
}

func TestParser_Parse_CommandLookup(t *testing.T) {
	r := NewRegistry()
	p := NewParser(r)

	// Existing command
	result := p.Parse("/help")
	if result.Command == nil {
		t.Error("Parse(/help).Command should not be nil")
	}

	// Alias lookup
	result = p.Parse("/h")
	if result.Command == nil {
		t.Error("Parse(/h).Command should not be nil (alias)")
	}

	// Non-existent command
	result = p.Parse("/nonexistent")
	if result.Command != nil {
		t.Error("Parse(/nonexistent).Command should be nil")
	}
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidateArgs(t *testing.T) {
	// Command with required argument
	cmdWithRequired := &Command{
		Name: "/test",
		Args: []ArgDef{
			{Name: "required_arg", Required: true, Description: "A required argument"},
		},
	}

	// Missing required argument
	err := ValidateArgs(cmdWithRequired, []string{})
	if err == nil {
		t.Error("ValidateArgs should return error for missing required argument")
	}

	// Provided required argument
	err = ValidateArgs(cmdWithRequired, []string{"value"})
	if err != nil {
		t.Errorf("ValidateArgs should not error when required argument provided: %v", err)
	}

	// Command with enum argument
	cmdWithEnum := &Command{
		Name: "/theme",
		Args: []ArgDef{
			{Name: "name", Required: true, Type: ArgTypeEnum, Values: []string{"dark", "light", "auto"}},
		},
	}

	// Valid enum value
	err = ValidateArgs(cmdWithEnum, []string{"dark"})
	if err != nil {
		t.Errorf("ValidateArgs should accept valid enum value: %v", err)
	}

	// Invalid enum value
	err = ValidateArgs(cmdWithEnum, []string{"invalid"})
	if err == nil {
		t.Error("ValidateArgs should reject invalid enum value")
	}

	// Case insensitive enum
	err = ValidateArgs(cmdWithEnum, []string{"DARK"})
	if err != nil {
		t.Errorf("ValidateArgs should accept case-insensitive enum: %v", err)
	}

	// Nil command should not error
	err = ValidateArgs(nil, []string{"anything"})
	if err != nil {
		t.Errorf("ValidateArgs(nil) should not error: %v", err)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Command:  "/test",
		Arg:      "arg1",
		Message:  "invalid value",
		Got:      "bad",
		Expected: "good1, good2",
	}

	errStr := err.Error()

	// Should contain command, argument, message, got, expected
	contains := []string{"/test", "arg1", "invalid value", "bad", "good1, good2"}
	for _, s := range contains {
		if !containsStr(errStr, s) {
			t.Errorf("Error() should contain %q, got: %s", s, errStr)
		}
	}
}

// =============================================================================
// HANDLER TESTS
// =============================================================================

// runCmd executes a tea.Cmd and returns the resulting message.
func runCmd(t *testing.T, ctx *Context, name string, args []string) interface{} {
	t.Helper()
	r := NewRegistry()
	cmd := r.Get(name)
	if cmd == nil {
		t.Fatalf("command %s not registered", name)
	}
	teaCmd := cmd.Handler(ctx, args)
	if teaCmd == nil {
		t.Fatalf("handler for %s returned nil command", name)
	}
	return teaCmd()
}

func TestHandleHelp(t *testing.T) {
	// Extra arguments are ignored; help always shows the full listing.
	msg := runCmd(t, nil, "/help", []string{"ignored"})
	if _, ok := msg.(ShowHelpMsg); !ok {
		t.Errorf("got %T, want ShowHelpMsg", msg)
	}
}

func TestHandleClear(t *testing.T) {
	msg := runCmd(t, nil, "/clear", nil)
	if _, ok := msg.(ClearConversationMsg); !ok {
		t.Errorf("got %T, want ClearConversationMsg", msg)
	}
}

func TestHandleAttach_MissingArg(t *testing.T) {
	msg := runCmd(t, nil, "/attach", nil)
	if _, ok := msg.(ErrorMsg); !ok {
		t.Errorf("got %T, want ErrorMsg", msg)
	}
}

func TestHandleAttach_UnsupportedType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}

	msg := runCmd(t, nil, "/attach", []string{path})
	if _, ok := msg.(ErrorMsg); !ok {
		t.Errorf("got %T, want ErrorMsg for unsupported type", msg)
	}
}

func TestHandleAttach_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	if err := os.WriteFile(path, []byte("fake png"), 0644); err != nil {
		t.Fatal(err)
	}

	msg := runCmd(t, nil, "/attach", []string{path})
	att, ok := msg.(AttachFileMsg)
	if !ok {
		t.Fatalf("got %T, want AttachFileMsg", msg)
	}
	if att.Attachment.Name != "photo.png" {
		t.Errorf("Attachment.Name = %q", att.Attachment.Name)
	}
}

func TestHandleDetach(t *testing.T) {
	msg := runCmd(t, nil, "/detach", nil)
	if _, ok := msg.(DetachFileMsg); !ok {
		t.Errorf("got %T, want DetachFileMsg", msg)
	}
}

func TestHandleModel_Switch(t *testing.T) {
	cfg := config.Default()
	ctx := NewContext(cfg, nil, nil)

	msg := runCmd(t, ctx, "/model", []string{"opus"})
	switched, ok := msg.(ModelSwitchMsg)
	if !ok {
		t.Fatalf("got %T, want ModelSwitchMsg", msg)
	}
	if switched.Model != "claude-3-opus-20240229" {
		t.Errorf("Model = %q, want resolved ID", switched.Model)
	}
	if cfg.Model != "claude-3-opus-20240229" {
		t.Errorf("config not updated: %q", cfg.Model)
	}
}

func TestHandleModel_List(t *testing.T) {
	msg := runCmd(t, nil, "/model", nil)
	sysMsg, ok := msg.(SystemMessageMsg)
	if !ok {
		t.Fatalf("got %T, want SystemMessageMsg", msg)
	}
	if !containsStr(sysMsg.Content, "sonnet") {
		t.Error("model list should mention sonnet")
	}
}

func TestHandleConfig_GetSet(t *testing.T) {
	cfg := config.Default()
	ctx := NewContext(cfg, nil, nil)

	msg := runCmd(t, ctx, "/config", []string{"ui.theme", "light"})
	update, ok := msg.(ConfigUpdateMsg)
	if !ok {
		t.Fatalf("got %T, want ConfigUpdateMsg", msg)
	}
	if update.Error != nil {
		t.Fatalf("unexpected error: %v", update.Error)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q, want light", cfg.UI.Theme)
	}

	msg = runCmd(t, ctx, "/config", []string{"ui.theme"})
	if _, ok := msg.(SystemMessageMsg); !ok {
		t.Errorf("got %T, want SystemMessageMsg", msg)
	}
}

func TestHandleKey_Invalid(t *testing.T) {
	msg := runCmd(t, nil, "/key", []string{"not-a-key"})
	keyMsg, ok := msg.(SetAPIKeyMsg)
	if !ok {
		t.Fatalf("got %T, want SetAPIKeyMsg", msg)
	}
	if keyMsg.Error == nil {
		t.Error("invalid key should produce an error")
	}
}

// =============================================================================
// CONTEXT TESTS
// =============================================================================

func TestNewContext(t *testing.T) {
	ctx := NewContext(nil, nil, nil)
	if ctx == nil {
		t.Fatal("NewContext() returned nil")
	}
}

func TestContext_WithHandlerContext(t *testing.T) {
	ctx := NewContext(nil, nil, nil)
	hctx := &HandlerContext{}

	result := ctx.WithHandlerContext(hctx)

	if result != ctx {
		t.Error("WithHandlerContext should return same context")
	}

	if ctx.HandlerCtx != hctx {
		t.Error("HandlerCtx should be set")
	}
}

// =============================================================================
// ARGTYPE TESTS
// =============================================================================

func TestArgType_Values(t *testing.T) {
	// Verify ArgType constants are defined
	types := []ArgType{
		ArgTypeString,
		ArgTypeModel,
		ArgTypeFile,
		ArgTypeEnum,
		ArgTypeConfig,
	}

	for i, at := range types {
		if int(at) != i {
			t.Errorf("ArgType constant %d has unexpected value %d", i, at)
		}
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func containsStr(haystack, needle string) bool {
	return len(haystack) >= len(needle) && (haystack == needle ||
		len(haystack) > len(needle) && (haystack[:len(needle)] == needle ||
			containsStr(haystack[1:], needle)))
}
