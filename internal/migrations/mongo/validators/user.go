package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"first_name",
			"last_name",
			"email",
			"password",
			"phone",
			"address",
			"role",
			"is_active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"first_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"last_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"email": bson.M{
				"bsonType": "string",
				"pattern":  `^[^@\s]+@[^@\s]+\.[^@\s]+$`,
			},

			"password": bson.M{
				"bsonType": "string",
			},

			"phone": bson.M{
				"bsonType": "string",
				"pattern":  `^\+[1-9]\d{7,14}$`,
			},

			"address": bson.M{
				"bsonType": "object",
				"required": []string{"street", "city", "state", "zip_code"},
				"properties": bson.M{
					"street": bson.M{"bsonType": "string"},
					"city":   bson.M{"bsonType": "string"},
					"state": bson.M{
						"bsonType":  "string",
						"minLength": 2,
						"maxLength": 2,
					},
					"zip_code": bson.M{
						"bsonType": "string",
						"pattern":  `^\d{5}(-\d{4})?$`,
					},
				},
			},

			"role": bson.M{
				"enum": []string{"user", "admin"},
			},

			"is_active": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
