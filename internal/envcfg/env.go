// Package env provides a convenient way to convert environment variables
// into Go data, in the style of package flag. cmd/graql uses it to read
// GRAQL_NO_COLOR, which turns off colored output.
package env

import (
	"log"
	"os"
	"strconv"
	"strings"
)

var funcs []func() bool

// Int returns a new int pointer. When Parse is called, env var name is
// parsed and the result assigned to the returned location.
func Int(name string, value int) *int {
	p := new(int)
	IntVar(p, name, value)
	return p
}

// IntVar defines an int var with the given name and default value. p
// points to the location that receives the parsed value.
func IntVar(p *int, name string, value int) {
	*p = value
	funcs = append(funcs, func() bool {
		if s := os.Getenv(name); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				log.Println(name, err)
				return false
			}
			*p = v
		}
		return true
	})
}

// Bool returns a new bool pointer. When Parse is called, env var name is
// parsed with strconv.ParseBool and the result assigned to the returned
// location.
func Bool(name string, value bool) *bool {
	p := new(bool)
	BoolVar(p, name, value)
	return p
}

// BoolVar defines a bool var with the given name and default value.
func BoolVar(p *bool, name string, value bool) {
	*p = value
	funcs = append(funcs, func() bool {
		if s := os.Getenv(name); s != "" {
			v, err := strconv.ParseBool(s)
			if err != nil {
				log.Println(name, err)
				return false
			}
			*p = v
		}
		return true
	})
}

// String returns a new string pointer. When Parse is called, env var name
// is assigned to the returned location.
func String(name string, value string) *string {
	p := new(string)
	StringVar(p, name, value)
	return p
}

// StringVar defines a string var with the given name and default value.
func StringVar(p *string, name string, value string) {
	*p = value
	funcs = append(funcs, func() bool {
		if s := os.Getenv(name); s != "" {
			*p = s
		}
		return true
	})
}

// StringSlice returns a pointer to a string slice. It expects env var
// name to hold a comma-delimited list of items.
func StringSlice(name string, value ...string) *[]string {
	p := new([]string)
	StringSliceVar(p, name, value...)
	return p
}

// StringSliceVar defines a new string slice var with the given name.
func StringSliceVar(p *[]string, name string, value ...string) {
	*p = value
	funcs = append(funcs, func() bool {
		if s := os.Getenv(name); s != "" {
			*p = strings.Split(s, ",")
		}
		return true
	})
}

// Parse parses known env vars and assigns the values to the variables
// previously registered via the *Var functions. If any value fails to
// parse, Parse prints a diagnostic for each failure and exits status 1.
func Parse() {
	ok := true
	for _, f := range funcs {
		ok = f() && ok
	}
	if !ok {
		os.Exit(1)
	}
}
