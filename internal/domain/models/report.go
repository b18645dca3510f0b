package models

type PassengerDistribution struct {
	Nationality map[string]int `json:"nationality"`
	Gender      map[string]int `json:"gender"`
}
