package schema

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/UnknownOlympus/ont/internal/models"
)

const (
	// DatabaseName is the database holding the employees collection.
	DatabaseName = "ont"
	// EmployeesCollection is the collection the validator is enforced on.
	EmployeesCollection = "employees"
)

// EmployeesValidator returns the $jsonSchema validator of the employees collection.
//
// name, position and level are required. app is constrained when present but not required.
// No other field is allowed, _id is declared so storage assigned ids pass the closed schema.
func EmployeesValidator() bson.D {
	return bson.D{{Key: "$jsonSchema", Value: bson.D{
		{Key: "bsonType", Value: "object"},
		{Key: "required", Value: bson.A{"name", "position", "level"}},
		{Key: "additionalProperties", Value: false},
		{Key: "properties", Value: bson.D{
			{Key: "_id", Value: bson.D{}},
			{Key: "name", Value: bson.D{
				{Key: "bsonType", Value: "string"},
				{Key: "description", Value: `"name" is required and is a non-empty string`},
				{Key: "minLength", Value: 1},
			}},
			{Key: "position", Value: bson.D{
				{Key: "bsonType", Value: "string"},
				{Key: "description", Value: `"position" is required and is a string`},
				{Key: "minLength", Value: models.PositionMinLength},
			}},
			{Key: "level", Value: bson.D{
				{Key: "bsonType", Value: "string"},
				{Key: "description", Value: `"level" is required and is one of "junior", "mid", "senior"`},
				{Key: "enum", Value: bson.A{
					string(models.LevelJunior), string(models.LevelMid), string(models.LevelSenior),
				}},
			}},
			{Key: "app", Value: bson.D{
				{Key: "bsonType", Value: "string"},
				{Key: "description", Value: `"app" is optional and is one of "react", "angular"`},
				{Key: "enum", Value: bson.A{string(models.AppReact), string(models.AppAngular)}},
			}},
		}},
	}}}
}
