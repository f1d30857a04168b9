package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"
)

func toJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}

func fromJSON(data datatypes.JSON, target interface{}) {
	if len(data) == 0 {
		return
	}
	// Decode failures leave the target at its zero value.
	_ = json.Unmarshal(data, target)
}
