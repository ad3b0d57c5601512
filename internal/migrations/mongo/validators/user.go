package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"email",
			"role",
			"membership_tier",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"role": bson.M{
				"bsonType": "string",
				"enum": []string{
					"Participant",
					"Caregiver",
					"Staff",
					"Volunteer",
				},
			},

			"membership_tier": bson.M{
				"bsonType": "string",
				"enum": []string{
					"Adhoc",
					"Weekly_1",
					"Weekly_2",
					"Unlimited",
					"Staff",
					"Volunteer",
				},
			},

			"medical_flags": bson.M{
				"bsonType": "object",
				"additionalProperties": bson.M{
					"bsonType": "bool",
				},
			},

			"linked_account_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
