package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema holds the full relational model.  Every statement is
// idempotent (IF NOT EXISTS) so EnsureSchema can run on every start.
// All foreign keys restrict on update and delete: reference data can
// never be pulled out from under a flight, and a heart can only point
// at a ticket/user pair that exists.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS user (
		id       VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS airport (
		id      VARCHAR(8)   NOT NULL,
		city    VARCHAR(128) NOT NULL,
		country VARCHAR(128) NOT NULL,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS airline (
		id           VARCHAR(16)  NOT NULL,
		name         VARCHAR(128) NOT NULL,
		website_link VARCHAR(255) NULL,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS flight (
		id                VARCHAR(32) NOT NULL,
		airline_id        VARCHAR(16) NOT NULL,
		airport_depart_id VARCHAR(8)  NOT NULL,
		airport_arrive_id VARCHAR(8)  NOT NULL,
		time_departure    DATETIME    NOT NULL,
		time_arrival      DATETIME    NOT NULL,
		num_tickets       INT         NOT NULL CHECK (num_tickets >= 0),
		PRIMARY KEY (id),
		CONSTRAINT fk_flight_airline FOREIGN KEY (airline_id) REFERENCES airline (id)
			ON UPDATE RESTRICT ON DELETE RESTRICT,
		CONSTRAINT fk_flight_depart FOREIGN KEY (airport_depart_id) REFERENCES airport (id)
			ON UPDATE RESTRICT ON DELETE RESTRICT,
		CONSTRAINT fk_flight_arrive FOREIGN KEY (airport_arrive_id) REFERENCES airport (id)
			ON UPDATE RESTRICT ON DELETE RESTRICT
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS ticket (
		code         VARCHAR(16)   NOT NULL,
		flight_id    VARCHAR(32)   NOT NULL,
		airline_id   VARCHAR(16)   NOT NULL,
		class        VARCHAR(32)   NOT NULL,
		price        DECIMAL(10,2) NOT NULL CHECK (price >= 0),
		availability INT           NOT NULL CHECK (availability >= 0),
		PRIMARY KEY (code, flight_id, airline_id),
		CONSTRAINT fk_ticket_flight FOREIGN KEY (flight_id) REFERENCES flight (id)
			ON UPDATE RESTRICT ON DELETE RESTRICT,
		CONSTRAINT fk_ticket_airline FOREIGN KEY (airline_id) REFERENCES airline (id)
			ON UPDATE RESTRICT ON DELETE RESTRICT
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS hearts (
		ticket_code VARCHAR(16)  NOT NULL,
		flight_id   VARCHAR(32)  NOT NULL,
		airline_id  VARCHAR(16)  NOT NULL,
		user_id     VARCHAR(255) NOT NULL,
		PRIMARY KEY (ticket_code, flight_id, airline_id, user_id),
		CONSTRAINT fk_hearts_ticket FOREIGN KEY (ticket_code, flight_id, airline_id)
			REFERENCES ticket (code, flight_id, airline_id)
			ON UPDATE RESTRICT ON DELETE RESTRICT,
		CONSTRAINT fk_hearts_user FOREIGN KEY (user_id) REFERENCES user (id)
			ON UPDATE RESTRICT ON DELETE RESTRICT
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables.  Statement order matters
// because of the foreign keys.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
