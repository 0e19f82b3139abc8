package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/todosync/internal/model"
)

type Type string

const (
	TypeAdd       Type = "add"
	TypeFilter    Type = "filter"
	TypeClear     Type = "clear"
	TypeToggleAll Type = "toggle"
	TypeReload    Type = "reload"
	TypeDelete    Type = "delete"
	TypeDismiss   Type = "dismiss"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title string
}

type FilterArgs struct {
	Filter model.Filter
}

type DeleteArgs struct {
	ID int
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Filter *FilterArgs
	Delete *DeleteArgs
}

var aliases = map[string]Type{
	"a":          TypeAdd,
	"f":          TypeFilter,
	"show":       TypeFilter,
	"clear":      TypeClear,
	"cc":         TypeClear,
	"toggle-all": TypeToggleAll,
	"ta":         TypeToggleAll,
	"r":          TypeReload,
	"rm":         TypeDelete,
	"del":        TypeDelete,
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimLeft(raw, ":/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeAdd:
		// The title keeps its spacing; validation happens where the todo is created.
		title := strings.TrimSpace(strings.TrimPrefix(raw, parts[0]))
		return Command{Type: TypeAdd, Raw: input, Add: &AddArgs{Title: title}}, nil
	case TypeFilter:
		return parseFilter(input, args)
	case TypeDelete:
		return parseDelete(input, args)
	case TypeClear, TypeToggleAll, TypeReload, TypeDismiss:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", typ)}
		}
		return Command{Type: typ, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires one of all, active, completed"}
	}
	f, err := model.ParseFilter(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Filter: f}}, nil
}

func parseDelete(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "delete requires a todo id"}
	}
	id, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
	if err != nil || id <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid todo id: %s", args[0])}
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{ID: id}}, nil
}
