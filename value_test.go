package graql

import (
	"testing"
	"time"
)

func TestValueEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal longs", LongValue(42), LongValue(42), true},
		{"unequal longs", LongValue(42), LongValue(7), false},
		{"long never equals double", LongValue(1), DoubleValue(1.0), false},
		{"equal strings", StringValue("abc"), StringValue("abc"), true},
		{"unequal strings", StringValue("abc"), StringValue("abd"), false},
		{"equal bools", BoolValue(true), BoolValue(true), true},
		{"unequal bools", BoolValue(true), BoolValue(false), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Equal(c.b); got != c.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want string
	}{
		{"long", LongValue(42), "42"},
		{"double integral gets trailing .0", DoubleValue(3), "3.0"},
		{"double fractional", DoubleValue(3.14), "3.14"},
		{"bool true", BoolValue(true), "true"},
		{"bool false", BoolValue(false), "false"},
		{"string quoted and escaped", StringValue("a\"b\\c\nd"), `"a\"b\\c\nd"`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.v.String(); got != c.want {
				t.Errorf("String() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestDateTimeValueTruncatesToMillisecond(t *testing.T) {
	t1 := time.Date(2024, 3, 4, 5, 6, 7, 123456789, time.UTC)
	v := DateTimeValue(t1)
	want := t1.Truncate(time.Millisecond)
	if !v.AsDateTime().Equal(want) {
		t.Errorf("AsDateTime() = %v, want %v", v.AsDateTime(), want)
	}
}

func TestFormatDateTime(t *testing.T) {
	cases := []struct {
		name string
		t    time.Time
		want string
	}{
		{"no millis omitted", time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), "2024-01-02T10:00:00"},
		{"millis included", time.Date(2024, 1, 2, 10, 0, 0, 5*int(time.Millisecond), time.UTC), "2024-01-02T10:00:00.005"},
		{"year above 9999 gets plus sign", time.Date(10000, 1, 2, 0, 0, 0, 0, time.UTC), "+10000-01-02T00:00:00"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := formatDateTime(c.t); got != c.want {
				t.Errorf("formatDateTime(%v) = %q, want %q", c.t, got, c.want)
			}
		})
	}
}

func TestParseDateTimeRejectsSubMillisecondPrecision(t *testing.T) {
	_, err := parseDateTime("2024-01-02T10:00:00.123456")
	if err == nil {
		t.Fatal("got nil error for sub-millisecond datetime, want one")
	}
	ge, ok := err.(*Error)
	if !ok {
		t.Fatalf("got error of type %T, want *Error", err)
	}
	if ge.Kind != KindInvalidDateTimeNanos {
		t.Errorf("got Kind %v, want KindInvalidDateTimeNanos", ge.Kind)
	}
}

func TestUnquoteString(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"simple", `"abc"`, "abc"},
		{"escaped quote", `"a\"b"`, `a"b`},
		{"escaped newline", `"a\nb"`, "a\nb"},
		{"escaped backslash", `"a\\b"`, `a\b`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := unquoteString(c.text)
			if err != nil {
				t.Fatalf("unquoteString(%q): unexpected error: %v", c.text, err)
			}
			if got != c.want {
				t.Errorf("unquoteString(%q) = %q, want %q", c.text, got, c.want)
			}
		})
	}
}

func TestUnquoteStringDanglingEscape(t *testing.T) {
	// Three runes: opening quote, a trailing backslash with nothing after it
	// in the body, and a closing quote; unquoteString strips the outer pair
	// and is left decoding a body of just "\", which has no escaped rune.
	text := "\"\\\""
	_, err := unquoteString(text)
	if err == nil {
		t.Fatal("got nil error for dangling escape, want one")
	}
}
