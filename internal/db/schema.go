package db

import (
	"context"
	"fmt"
)

// EnsureSchema creates the cruise tables when they are missing.
func EnsureSchema(ctx context.Context, q DBTX) error {
	for _, stmt := range schema {
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS dpx_users (
		user_id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(100) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		email VARCHAR(191) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'customer',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_otp_code (
		email VARCHAR(191) NOT NULL,
		otp_code CHAR(6) NOT NULL,
		code_type CHAR(1) NOT NULL,
		expires_at DATETIME NOT NULL,
		PRIMARY KEY (email, code_type)
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_port (
		portid BIGINT AUTO_INCREMENT PRIMARY KEY,
		pname VARCHAR(100) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_trip (
		tripid BIGINT AUTO_INCREMENT PRIMARY KEY,
		start_port BIGINT NULL,
		end_port BIGINT NULL,
		startdate DATE NOT NULL,
		enddate DATE NOT NULL,
		night INT NOT NULL DEFAULT 0,
		is_active CHAR(1) NOT NULL DEFAULT 'Y'
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_trip_port (
		tripportid BIGINT AUTO_INCREMENT PRIMARY KEY,
		tripid BIGINT NOT NULL,
		portid BIGINT NOT NULL,
		sequence_number INT NOT NULL,
		arrivaltime DATETIME NULL,
		departuretime DATETIME NULL,
		KEY idx_trip_port_trip (tripid, sequence_number)
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_stateroom (
		sid BIGINT AUTO_INCREMENT PRIMARY KEY,
		type VARCHAR(60) NOT NULL,
		size INT NOT NULL DEFAULT 0,
		bed INT NOT NULL,
		bathroom INT NOT NULL DEFAULT 1,
		balcony CHAR(1) NOT NULL DEFAULT 'N'
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_location (
		locaid BIGINT AUTO_INCREMENT PRIMARY KEY,
		location_side VARCHAR(30) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_group (
		groupid BIGINT AUTO_INCREMENT PRIMARY KEY,
		tripid BIGINT NOT NULL,
		group_size INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_pass_room (
		roomid BIGINT AUTO_INCREMENT PRIMARY KEY,
		roomnumber VARCHAR(20) NOT NULL,
		price DECIMAL(12,2) NOT NULL,
		occupancy_status CHAR(1) NOT NULL DEFAULT 'N',
		tripid BIGINT NOT NULL,
		sid BIGINT NOT NULL,
		locaid BIGINT NOT NULL,
		groupid BIGINT NULL,
		UNIQUE KEY uq_room_trip_number (tripid, roomnumber),
		KEY idx_room_group (groupid)
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_passenger_info (
		passinfoid BIGINT AUTO_INCREMENT PRIMARY KEY,
		fname VARCHAR(60) NOT NULL,
		lname VARCHAR(60) NOT NULL,
		birthdate DATE NULL,
		street VARCHAR(120) NULL,
		city VARCHAR(60) NULL,
		state VARCHAR(60) NULL,
		country VARCHAR(60) NULL,
		zipcode VARCHAR(20) NULL,
		gender VARCHAR(20) NULL,
		nationality VARCHAR(60) NULL,
		email VARCHAR(191) NULL,
		phone VARCHAR(30) NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_saved_pass (
		userid BIGINT NOT NULL,
		passinfoid BIGINT NOT NULL,
		PRIMARY KEY (userid, passinfoid)
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_passenger (
		passengerid BIGINT AUTO_INCREMENT PRIMARY KEY,
		groupid BIGINT NOT NULL,
		roomid BIGINT NULL,
		passinfoid BIGINT NOT NULL,
		KEY idx_passenger_group (groupid),
		KEY idx_passenger_room (roomid)
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_package (
		packid BIGINT AUTO_INCREMENT PRIMARY KEY,
		packtype VARCHAR(100) NOT NULL,
		packcost DECIMAL(12,2) NOT NULL,
		pricing_type VARCHAR(20) NOT NULL,
		is_available CHAR(1) NOT NULL DEFAULT 'Y'
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_trip_package (
		trippackid BIGINT AUTO_INCREMENT PRIMARY KEY,
		tripid BIGINT NOT NULL,
		packid BIGINT NOT NULL,
		UNIQUE KEY uq_trip_package (tripid, packid)
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_pass_package (
		passpackid BIGINT AUTO_INCREMENT PRIMARY KEY,
		trippackid BIGINT NOT NULL,
		passengerid BIGINT NOT NULL,
		UNIQUE KEY uq_pass_package (passengerid, trippackid)
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_invoice (
		inid BIGINT AUTO_INCREMENT PRIMARY KEY,
		totalamount DECIMAL(12,2) NOT NULL,
		duedate DATE NOT NULL,
		tripid BIGINT NOT NULL,
		groupid BIGINT NOT NULL,
		UNIQUE KEY uq_invoice_group_trip (groupid, tripid)
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_payment (
		paymentid BIGINT AUTO_INCREMENT PRIMARY KEY,
		paydate DATE NOT NULL,
		payamount DECIMAL(12,2) NOT NULL,
		paymethod VARCHAR(30) NOT NULL,
		paytype VARCHAR(20) NOT NULL,
		inid BIGINT NOT NULL,
		KEY idx_payment_invoice (inid)
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_restaurant (
		resid BIGINT AUTO_INCREMENT PRIMARY KEY,
		resname VARCHAR(100) NOT NULL,
		restype VARCHAR(60) NOT NULL,
		resstarttime TIME NULL,
		resendtime TIME NULL,
		resfloor INT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_trip_restaurant (
		tripid BIGINT NOT NULL,
		resid BIGINT NOT NULL,
		PRIMARY KEY (tripid, resid)
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_activity (
		actid BIGINT AUTO_INCREMENT PRIMARY KEY,
		actname VARCHAR(100) NOT NULL,
		unit INT NULL,
		min_age_limit INT NULL,
		max_age_limit INT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_activity_floor (
		actid BIGINT NOT NULL,
		floor INT NOT NULL,
		PRIMARY KEY (actid, floor)
	)`,
	`CREATE TABLE IF NOT EXISTS dpx_trip_activity (
		tripid BIGINT NOT NULL,
		actid BIGINT NOT NULL,
		PRIMARY KEY (tripid, actid)
	)`,
}
