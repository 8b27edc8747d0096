package ast

// Print renders e in the parenthesised form used by the `parse` subcommand
// (spec §6): "(op lhs rhs)" for binary/logical, "(op expr)" for unary,
// "(group expr)" for grouping, and the literal's own text otherwise. Every
// node already implements this exact format in its String method; Print is
// just a named entry point for it (cmd/golox parse calls String directly).
func Print(e Expr) string {
	return e.String()
}
