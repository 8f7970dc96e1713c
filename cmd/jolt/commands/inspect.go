package commands

import (
	"context"
	"fmt"

	"github.com/kr/pretty"

	"jolt/internal/lexer"
	"jolt/internal/parser"
)

// TokensCommand dumps the token stream of a file.
func TokensCommand(ctx context.Context, env Env, args []string) error {
	fs := newFlagSet("tokens", env)
	if err := fs.Parse(args); err != nil {
		return err
	}
	file, err := singleFile(fs)
	if err != nil {
		return err
	}
	src, err := readSource(file)
	if err != nil {
		return err
	}

	for _, tok := range lexer.Tokenize(src) {
		fmt.Fprintf(env.Stdout, "%d:%d\t%s\n", tok.Line, tok.Column, tok)
	}
	return nil
}

// ParseCommand pretty-prints the syntax tree of a file.
func ParseCommand(ctx context.Context, env Env, args []string) error {
	fs := newFlagSet("parse", env)
	if err := fs.Parse(args); err != nil {
		return err
	}
	file, err := singleFile(fs)
	if err != nil {
		return err
	}
	src, err := readSource(file)
	if err != nil {
		return err
	}

	prog, err := parser.ParseFile(src, file)
	if err != nil {
		return err
	}
	for _, stmt := range prog.Body.Body {
		pretty.Fprintf(env.Stdout, "%# v\n", stmt)
	}
	return nil
}

// CheckCommand parses a file without running it.
func CheckCommand(ctx context.Context, env Env, args []string) error {
	fs := newFlagSet("check", env)
	if err := fs.Parse(args); err != nil {
		return err
	}
	file, err := singleFile(fs)
	if err != nil {
		return err
	}
	src, err := readSource(file)
	if err != nil {
		return err
	}

	if _, err := parser.ParseFile(src, file); err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "%s: syntax is valid\n", file)
	return nil
}
