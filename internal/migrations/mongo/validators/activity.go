package validators

import "go.mongodb.org/mongo-driver/bson"

var ActivityValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"title",
			"start_time",
			"base_capacity",
			"volunteer_slots",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"start_time": bson.M{
				"bsonType": "date",
			},

			"end_time": bson.M{
				"bsonType": "date",
			},

			"location": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},

			"base_capacity": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  500,
			},

			"volunteer_slots": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  50,
			},

			"requirements": bson.M{
				"bsonType": "object",
				"additionalProperties": bson.M{
					"bsonType": "bool",
				},
			},

			"payment_required": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
