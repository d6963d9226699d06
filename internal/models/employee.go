package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Level is the seniority of an employee.
type Level string

const (
	LevelJunior Level = "junior"
	LevelMid    Level = "mid"
	LevelSenior Level = "senior"
)

// App is the frontend stack an employee works on.
type App string

const (
	AppReact   App = "react"
	AppAngular App = "angular"
)

// PositionMinLength is the shortest position title the collection accepts.
const PositionMinLength = 5

// ErrUnknownField is returned when a document carries a field outside the closed employee schema.
var ErrUnknownField = errors.New("unknown field")

// Employee represents a document of the employees collection.
type Employee struct {
	ID       primitive.ObjectID `json:"id"                bson:"_id,omitempty"`
	Name     string             `json:"name"              bson:"name"           validate:"required"`
	Position string             `json:"position"          bson:"position"       validate:"required,min=5"`
	Level    Level              `json:"level"             bson:"level"          validate:"required,oneof=junior mid senior"`
	App      App                `json:"app,omitempty"     bson:"app,omitempty"  validate:"omitempty,oneof=react angular"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the employee against the rules the collection validator enforces.
// App is optional, but must be one of the known stacks when set. A struct cannot tell an
// empty app from a missing one, use ValidateDocument for raw documents.
func (e Employee) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("invalid employee: %w", err)
	}

	return nil
}

// fields lists every key the closed schema allows, with whether it must hold a string.
var fields = map[string]bool{
	"_id":      false,
	"name":     true,
	"position": true,
	"level":    true,
	"app":      true,
}

// ValidateDocument checks a raw document before it is sent to the server.
// Unknown keys are rejected, so are non-string values for the declared string fields.
func ValidateDocument(doc bson.M) error {
	var unknown []string
	for key, value := range doc {
		isString, ok := fields[key]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		if _, str := value.(string); isString && !str {
			return fmt.Errorf("invalid employee: field %q must be a string, got %T", key, value)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("invalid employee: %w: %s", ErrUnknownField, strings.Join(unknown, ", "))
	}

	// omitempty on the struct treats an empty app as absent, the server enum does not.
	if app, ok := doc["app"].(string); ok {
		if err := validate.Var(app, "oneof=react angular"); err != nil {
			return fmt.Errorf("invalid employee: field \"app\": %w", err)
		}
	}

	// _id may be of any type, only the declared string fields are decoded.
	body := make(bson.M, len(doc))
	for key, value := range doc {
		if key != "_id" {
			body[key] = value
		}
	}

	raw, err := bson.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal employee document: %w", err)
	}

	var employee Employee
	if err = bson.Unmarshal(raw, &employee); err != nil {
		return fmt.Errorf("failed to decode employee document: %w", err)
	}

	return employee.Validate()
}
