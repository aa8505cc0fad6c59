// Package postgres installs SQL functions that convert between Burst
// account IDs stored as BIGINT and their checksummed addresses, producing
// the same strings as the Go codec.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/paraglidehq/burstid"
)

// Config holds the address settings baked into the SQL functions.
type Config struct {
	Prefix string
}

// DefaultConfig returns the configuration matching burstid's defaults.
// Use this unless you've customized burstid.Prefix.
func DefaultConfig() Config {
	return Config{Prefix: "BURST"}
}

var ErrConfigMismatch = errors.New("burstid: database config does not match application config")

// Migrate runs the idempotent migration with the given configuration.
// If the database already has a different configuration, returns ErrConfigMismatch.
func Migrate(ctx context.Context, db *sql.DB, cfg Config) error {
	// Create config table
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS _burstid_config (
			id int PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			prefix text NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("burstid: create config table: %w", err)
	}

	// Check existing config
	var prefix string
	err = db.QueryRowContext(ctx, `SELECT prefix FROM _burstid_config`).Scan(&prefix)
	if err == nil {
		if prefix != cfg.Prefix {
			return fmt.Errorf("%w: db has prefix=%q, app has prefix=%q", ErrConfigMismatch, prefix, cfg.Prefix)
		}
	} else if errors.Is(err, sql.ErrNoRows) {
		_, err = db.ExecContext(ctx, `INSERT INTO _burstid_config (prefix) VALUES ($1)`, cfg.Prefix)
		if err != nil {
			return fmt.Errorf("burstid: insert config: %w", err)
		}
	} else {
		return fmt.Errorf("burstid: read config: %w", err)
	}

	_, err = db.ExecContext(ctx, generateSQL(cfg))
	if err != nil {
		return fmt.Errorf("burstid: run migrations: %w", err)
	}

	return nil
}

// GetConfig reads the configuration from the database.
func GetConfig(ctx context.Context, db *sql.DB) (Config, error) {
	var cfg Config
	err := db.QueryRowContext(ctx, `SELECT prefix FROM _burstid_config`).Scan(&cfg.Prefix)
	return cfg, err
}

// ToAddress renders id with the database's burst_id_to_address function.
func ToAddress(ctx context.Context, db *sql.DB, id burstid.ID) (burstid.Address, error) {
	var addr string
	err := db.QueryRowContext(ctx, `SELECT burst_id_to_address($1)`, id).Scan(&addr)
	return burstid.Address(addr), err
}

// ToID parses addr with the database's burst_address_to_id function.
// Conversion failures are reported with the same sentinel errors as
// burstid.ToID.
func ToID(ctx context.Context, db *sql.DB, addr burstid.Address) (burstid.ID, error) {
	var id burstid.ID
	err := db.QueryRowContext(ctx, `SELECT burst_address_to_id($1)`, string(addr)).Scan(&id)
	return id, mapError(err)
}

func mapError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "22P02" {
		return err
	}
	for _, sentinel := range []error{burstid.ErrCodewordTooLong, burstid.ErrCodewordInvalid, burstid.ErrOverflow} {
		if strings.HasPrefix(pqErr.Message, sentinel.Error()) {
			return fmt.Errorf("burst_address_to_id: %w", sentinel)
		}
	}
	return err
}

func generateSQL(cfg Config) string {
	prefix := ""
	if cfg.Prefix != "" {
		prefix = cfg.Prefix + "-"
	}

	return fmt.Sprintf(`
-- GF(32) multiplication
CREATE OR REPLACE FUNCTION burst_gmult(a int, b int)
  RETURNS int
  LANGUAGE sql
  IMMUTABLE PARALLEL SAFE STRICT LEAKPROOF
  AS $$
  SELECT CASE WHEN a = 0 OR b = 0 THEN 0 ELSE
    (ARRAY[1,2,4,8,16,5,10,20,13,26,17,7,14,28,29,31,27,19,3,6,12,24,21,15,30,25,23,11,22,9,18,1])[
      ((ARRAY[0,0,1,18,2,5,19,11,3,29,6,27,20,8,12,23,4,10,30,17,7,22,28,26,21,25,9,16,13,14,24,15])[a + 1] +
       (ARRAY[0,0,1,18,2,5,19,11,3,29,6,27,20,8,12,23,4,10,30,17,7,22,28,26,21,25,9,16,13,14,24,15])[b + 1]) %% 31 + 1]
  END;
$$;

-- Syndrome check over a 17-symbol codeword
CREATE OR REPLACE FUNCTION burst_codeword_valid(cw int[])
  RETURNS boolean
  LANGUAGE plpgsql
  IMMUTABLE PARALLEL SAFE STRICT LEAKPROOF
  AS $$
DECLARE
  gexp int[] := ARRAY[1,2,4,8,16,5,10,20,13,26,17,7,14,28,29,31,27,19,3,6,12,24,21,15,30,25,23,11,22,9,18,1];
  total int := 0;
  t int;
  pos int;
BEGIN
  FOR i IN 1..4 LOOP
    t := 0;
    FOR j IN 0..30 LOOP
      CONTINUE WHEN j > 12 AND j < 27;
      pos := j;
      IF j > 26 THEN
        pos := j - 14;
      END IF;
      t := t # burst_gmult(cw[pos + 1], gexp[(i * j) %% 31 + 1]);
    END LOOP;
    total := total | t;
  END LOOP;
  RETURN total = 0;
END;
$$;

-- ID to address
CREATE OR REPLACE FUNCTION burst_id_to_address(id bigint)
  RETURNS text
  LANGUAGE plpgsql
  IMMUTABLE PARALLEL SAFE STRICT LEAKPROOF
  AS $$
DECLARE
  alphabet text := '23456789ABCDEFGHJKLMNPQRSTUVWXYZ';
  cmap int[] := ARRAY[3,2,1,0,7,6,5,4,13,14,15,16,12,8,9,10,11];
  n numeric := id;
  cw int[] := array_fill(0, ARRAY[17]);
  p int[] := ARRAY[0,0,0,0];
  fb int;
  result text := %s;
BEGIN
  IF n < 0 THEN
    n := n + 18446744073709551616;
  END IF;
  FOR i IN 1..13 LOOP
    cw[i] := mod(n, 32)::int;
    n := div(n, 32);
  END LOOP;
  FOR i IN REVERSE 13..1 LOOP
    fb := cw[i] # p[4];
    p[4] := p[3] # burst_gmult(30, fb);
    p[3] := p[2] # burst_gmult(6, fb);
    p[2] := p[1] # burst_gmult(9, fb);
    p[1] := burst_gmult(17, fb);
  END LOOP;
  cw[14] := p[1];
  cw[15] := p[2];
  cw[16] := p[3];
  cw[17] := p[4];
  FOR i IN 1..17 LOOP
    result := result || substr(alphabet, cw[cmap[i] + 1] + 1, 1);
    IF i %% 4 = 0 AND i < 14 THEN
      result := result || '-';
    END IF;
  END LOOP;
  RETURN result;
END;
$$;

-- Address to ID
CREATE OR REPLACE FUNCTION burst_address_to_id(addr text)
  RETURNS bigint
  LANGUAGE plpgsql
  IMMUTABLE PARALLEL SAFE STRICT
  AS $$
DECLARE
  alphabet text := '23456789ABCDEFGHJKLMNPQRSTUVWXYZ';
  cmap int[] := ARRAY[3,2,1,0,7,6,5,4,13,14,15,16,12,8,9,10,11];
  prefix text := %s;
  body text := addr;
  cw int[] := ARRAY[1,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0];
  symbols int := 0;
  pos int;
  n numeric := 0;
BEGIN
  IF prefix <> '' AND left(body, char_length(prefix)) = prefix THEN
    body := substr(body, char_length(prefix) + 1);
  END IF;
  FOR k IN 1..char_length(body) LOOP
    pos := strpos(alphabet, substr(body, k, 1));
    CONTINUE WHEN pos = 0;
    IF symbols > 16 THEN
      RAISE EXCEPTION '%s' USING ERRCODE = '22P02';
    END IF;
    cw[cmap[symbols + 1] + 1] := pos - 1;
    symbols := symbols + 1;
  END LOOP;
  IF symbols <> 17 OR NOT burst_codeword_valid(cw) THEN
    RAISE EXCEPTION '%s' USING ERRCODE = '22P02';
  END IF;
  FOR i IN REVERSE 13..1 LOOP
    n := n * 32 + cw[i];
  END LOOP;
  IF n >= 18446744073709551616 THEN
    RAISE EXCEPTION '%s' USING ERRCODE = '22P02';
  END IF;
  IF n >= 9223372036854775808 THEN
    n := n - 18446744073709551616;
  END IF;
  RETURN n::bigint;
END;
$$;
`,
		pq.QuoteLiteral(prefix), // result prefix in burst_id_to_address
		pq.QuoteLiteral(prefix), // prefix stripped in burst_address_to_id
		burstid.ErrCodewordTooLong,
		burstid.ErrCodewordInvalid,
		burstid.ErrOverflow,
	)
}
