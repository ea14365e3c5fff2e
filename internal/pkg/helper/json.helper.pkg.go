package helper

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

func JSONToString(payload any) (string, error) {
	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}

func StringToStruct[I any](payload string) (result *I, err error) {
	err = json.Unmarshal([]byte(payload), &result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// HashJSON returns the hex SHA-256 of payload's JSON encoding.
func HashJSON(payload any) (string, error) {
	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}
