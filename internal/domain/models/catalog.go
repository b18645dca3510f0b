package models

type Restaurant struct {
	ID        int64  `json:"resid"`
	Name      string `json:"resname"`
	Type      string `json:"restype"`
	StartTime string `json:"resstarttime"`
	EndTime   string `json:"resendtime"`
	Floor     int    `json:"resfloor"`
}

type Activity struct {
	ID     int64  `json:"actid"`
	Name   string `json:"actname"`
	Units  int    `json:"unit"`
	MinAge int    `json:"min_age_limit"`
	MaxAge int    `json:"max_age_limit"`
	Floors string `json:"floors"`
}
