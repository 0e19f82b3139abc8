package model

type ErrorKind string

const (
	ErrorLoadFailed   ErrorKind = "load"
	ErrorEmptyTitle   ErrorKind = "empty"
	ErrorAddFailed    ErrorKind = "add"
	ErrorDeleteFailed ErrorKind = "delete"
	ErrorUpdateFailed ErrorKind = "update"
)

var errorMessages = map[ErrorKind]string{
	ErrorLoadFailed:   "Unable to load todos",
	ErrorEmptyTitle:   "Title should not be empty",
	ErrorAddFailed:    "Unable to add a todo",
	ErrorDeleteFailed: "Unable to delete a todo",
	ErrorUpdateFailed: "Unable to update a todo",
}

func (k ErrorKind) IsValid() bool {
	_, ok := errorMessages[k]
	return ok
}

// Message is the user-facing banner text for k.
func (k ErrorKind) Message() string {
	return errorMessages[k]
}
