package aqt_test

import (
	"errors"
	"testing"

	"github.com/aqt-dev/aqt"
)

func quoteSQL(t *testing.T, cfg aqt.Config, segments ...string) string {
	t.Helper()
	result := render(t, aqt.New(cfg), name(segments...))
	return result.SQL
}

func TestQuote_SingleSegment(t *testing.T) {
	if got := quoteSQL(t, aqt.DefaultConfig(), "users"); got != `"users"` {
		t.Errorf("SQL = %q, want %q", got, `"users"`)
	}
}

func TestQuote_QualifiedName(t *testing.T) {
	got := quoteSQL(t, aqt.DefaultConfig(), "public", "users", "email")
	if want := `"public"."users"."email"`; got != want {
		t.Errorf("SQL = %q, want %q", got, want)
	}
}

func TestQuote_Disabled(t *testing.T) {
	got := quoteSQL(t, unquoted(), "users", "email")
	if want := "users.email"; got != want {
		t.Errorf("SQL = %q, want %q", got, want)
	}
}

func TestQuote_DistinctQuotePair(t *testing.T) {
	cfg := aqt.DefaultConfig()
	cfg.QuoteOpen = "["
	cfg.QuoteClose = "]"

	got := quoteSQL(t, cfg, "dbo", "users")
	if want := "[dbo].[users]"; got != want {
		t.Errorf("SQL = %q, want %q", got, want)
	}
}

func TestQuote_CustomSeparator(t *testing.T) {
	cfg := unquoted()
	cfg.NameSep = "__"

	got := quoteSQL(t, cfg, "users", "email")
	if want := "users__email"; got != want {
		t.Errorf("SQL = %q, want %q", got, want)
	}
}

func TestQuote_BareStar(t *testing.T) {
	if got := quoteSQL(t, aqt.DefaultConfig(), "*"); got != "*" {
		t.Errorf("SQL = %q, want %q", got, "*")
	}
}

func TestQuote_TrailingStarNeverQuoted(t *testing.T) {
	got := quoteSQL(t, backticked(), "me", "*")
	if want := "`me`.*"; got != want {
		t.Errorf("SQL = %q, want %q", got, want)
	}

	got = quoteSQL(t, aqt.DefaultConfig(), "db", "t", "*")
	if want := `"db"."t".*`; got != want {
		t.Errorf("SQL = %q, want %q", got, want)
	}
}

func TestQuote_NonTrailingStarRejected(t *testing.T) {
	_, err := aqt.New(aqt.DefaultConfig()).Render(name("*", "email"))
	if err == nil {
		t.Fatal("expected error for non-trailing *, got nil")
	}
	var structural aqt.StructuralError
	if !errors.As(err, &structural) {
		t.Errorf("error = %T, want StructuralError", err)
	}
}

func TestQuote_EmbeddedQuoteEscaped(t *testing.T) {
	got := quoteSQL(t, aqt.DefaultConfig(), `us"ers`)
	if want := `"us""ers"`; got != want {
		t.Errorf("SQL = %q, want %q", got, want)
	}
}

func TestQuote_EmbeddedCloseBracketEscaped(t *testing.T) {
	cfg := aqt.DefaultConfig()
	cfg.QuoteOpen = "["
	cfg.QuoteClose = "]"

	got := quoteSQL(t, cfg, "us]ers")
	if want := "[us]]ers]"; got != want {
		t.Errorf("SQL = %q, want %q", got, want)
	}
}
