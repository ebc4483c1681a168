package validators

import "go.mongodb.org/mongo-driver/bson"

var ServiceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"description",
			"price",
			"duration",
			"category",
			"is_active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 100,
			},

			"description": bson.M{
				"bsonType":  "string",
				"minLength": 10,
				"maxLength": 500,
			},

			"price": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"duration": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  30,
			},

			"category": bson.M{
				"enum": []string{"residential", "commercial", "deep-cleaning", "maintenance"},
			},

			"is_active": bson.M{
				"bsonType": "bool",
			},

			"features": bson.M{
				"bsonType": "array",
				"items":    bson.M{"bsonType": "string"},
			},

			"image_url": bson.M{
				"bsonType": "string",
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
