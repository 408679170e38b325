package offerdoc

import (
	"context"
	"strings"
	"time"
)

// Variable is a placeholder value substituted for [KEY] in template content.
type Variable struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// VariableList is a named, reusable set of variables.
type VariableList struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Variables []Variable `json:"variables"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Validate returns an error if the variable list contains invalid fields.
func (l *VariableList) Validate() error {
	if l.Name == "" {
		return Errorf(EINVALID, "variable list name required")
	}
	seen := make(map[string]bool, len(l.Variables))
	for _, v := range l.Variables {
		if v.Key == "" {
			return Errorf(EINVALID, "variable key required")
		}
		if seen[v.Key] {
			return Errorf(EINVALID, "duplicate variable key %q", v.Key)
		}
		seen[v.Key] = true
	}
	return nil
}

// Set adds a variable or replaces the value of an existing key.
func (l *VariableList) Set(key, value string) {
	for i := range l.Variables {
		if l.Variables[i].Key == key {
			l.Variables[i].Value = value
			return
		}
	}
	l.Variables = append(l.Variables, Variable{Key: key, Value: value})
}

// VariableListService represents a service for managing variable lists.
type VariableListService interface {
	// CreateVariableList creates a new variable list and sets its ID.
	// Returns ECONFLICT if a list with the same name exists.
	CreateVariableList(ctx context.Context, list *VariableList) error

	// FindVariableListByID retrieves a variable list by ID.
	// Returns ENOTFOUND if the list does not exist.
	FindVariableListByID(ctx context.Context, id string) (*VariableList, error)

	// FindVariableListByName retrieves a variable list by name.
	// Returns ENOTFOUND if the list does not exist.
	FindVariableListByName(ctx context.Context, name string) (*VariableList, error)

	// FindVariableLists retrieves all variable lists ordered by name.
	FindVariableLists(ctx context.Context) ([]*VariableList, error)

	// UpdateVariableList replaces the name and variables of a list.
	// Returns ENOTFOUND if the list does not exist.
	UpdateVariableList(ctx context.Context, list *VariableList) error

	// DeleteVariableList permanently removes a variable list.
	// Returns ENOTFOUND if the list does not exist.
	DeleteVariableList(ctx context.Context, id string) error
}

// ApplyVariables replaces every [KEY] in content with the variable's value.
// Variables with an empty key are skipped.
func ApplyVariables(content string, vars []Variable) string {
	for _, v := range vars {
		if v.Key == "" {
			continue
		}
		content = strings.ReplaceAll(content, "["+v.Key+"]", v.Value)
	}
	return content
}
