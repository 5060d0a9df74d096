package structs

type ElementType int

const (
	Text ElementType = iota + 1
	Select
	Number
	Info
)
