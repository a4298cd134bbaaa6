// Package logfile stores movements as append-only text logs, one file per
// movement kind, one line per movement:
//
//	2025-03-14 09:26:53 | Account: 004217 | Type: DEPOSIT | Amount: $1500.00 | Final Balance: $1500.00
package logfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/SscSPs/account_movements/internal/apperrors"
	"github.com/SscSPs/account_movements/internal/core/domain"
	portsrepo "github.com/SscSPs/account_movements/internal/core/ports/repositories"
	"github.com/SscSPs/account_movements/internal/utils"
)

const (
	// TimestampLayout is the yyyy-MM-dd HH:mm:ss layout of the first field.
	TimestampLayout = "2006-01-02 15:04:05"

	fieldSeparator = " | "
	accountPrefix  = "Account: "
	typePrefix     = "Type: "
	amountPrefix   = "Amount: $"
	balancePrefix  = "Final Balance: $"

	// maxLineBytes bounds one log line. Longer lines are skipped as unreadable.
	maxLineBytes = 64 * 1024
)

// MovementLog is a movement store backed by two text files.
type MovementLog struct {
	paths  map[domain.MovementKind]string
	logger *slog.Logger
}

// NewMovementLog creates a store writing deposits and withdrawals to the given paths.
// The files are created on first append.
func NewMovementLog(depositsPath, withdrawalsPath string, logger *slog.Logger) *MovementLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &MovementLog{
		paths: map[domain.MovementKind]string{
			domain.Deposit:    depositsPath,
			domain.Withdrawal: withdrawalsPath,
		},
		logger: logger,
	}
}

// Ensure MovementLog implements portsrepo.MovementRepositoryFacade
var _ portsrepo.MovementRepositoryFacade = (*MovementLog)(nil)

func (l *MovementLog) pathFor(kind domain.MovementKind) (string, error) {
	path, ok := l.paths[kind]
	if !ok {
		return "", fmt.Errorf("%w: unknown movement kind %q", apperrors.ErrValidation, kind)
	}
	return path, nil
}

// AppendMovement writes one line to the log of the record's kind.
func (l *MovementLog) AppendMovement(ctx context.Context, record domain.MovementRecord) (err error) {
	path, err := l.pathFor(record.Kind)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open movement log %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close movement log %s: %w", path, cerr)
		}
	}()

	if _, err := fmt.Fprintln(f, FormatLine(record)); err != nil {
		return fmt.Errorf("failed to append to movement log %s: %w", path, err)
	}
	return nil
}

// LoadMovementsForAccount scans the log of the given kind and returns the
// movements recorded for accountID. Lines that do not parse are skipped.
// A log that does not exist yet yields no movements.
func (l *MovementLog) LoadMovementsForAccount(ctx context.Context, kind domain.MovementKind, accountID string) ([]domain.Movement, error) {
	path, err := l.pathFor(kind)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Movement{}, nil
		}
		return nil, fmt.Errorf("failed to open movement log %s: %w", path, err)
	}
	defer f.Close()

	movements := []domain.Movement{}
	skipped := 0
	reader := bufio.NewReaderSize(f, maxLineBytes)
	for {
		line, tooLong, err := readLine(reader)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read movement log %s: %w", path, err)
		}
		if tooLong {
			skipped++
			continue
		}
		rec, ok := ParseLine(line, kind)
		if !ok {
			skipped++
			continue
		}
		if rec.AccountID == accountID {
			movements = append(movements, rec.Movement)
		}
	}

	if skipped > 0 {
		l.logger.Debug("Skipped unreadable movement log lines",
			slog.String("path", path),
			slog.Int("skipped", skipped))
	}
	return movements, nil
}

// readLine returns the next line without its terminator. A line longer than
// the reader's buffer is consumed and reported as tooLong. io.EOF is returned
// only when no line is left.
func readLine(r *bufio.Reader) (line string, tooLong bool, err error) {
	chunk, isPrefix, err := r.ReadLine()
	if err != nil {
		return "", false, err
	}
	if !isPrefix {
		return string(chunk), false, nil
	}
	for isPrefix {
		if _, isPrefix, err = r.ReadLine(); err != nil {
			if errors.Is(err, io.EOF) {
				return "", true, nil
			}
			return "", true, err
		}
	}
	return "", true, nil
}

// FormatLine renders a record in the log line format.
func FormatLine(record domain.MovementRecord) string {
	return strings.Join([]string{
		record.Timestamp.Format(TimestampLayout),
		accountPrefix + record.AccountID,
		typePrefix + string(record.Kind),
		amountPrefix + utils.FormatAmount(record.Amount),
		balancePrefix + utils.FormatAmount(record.ResultingBalance),
	}, fieldSeparator)
}

// ParseLine extracts a record from a log line by field position. It reports
// false for malformed lines and for lines whose type is not kind.
// The balance field is optional.
func ParseLine(line string, kind domain.MovementKind) (domain.MovementRecord, bool) {
	fields := strings.Split(strings.TrimRight(line, "\r"), fieldSeparator)
	if len(fields) < 4 {
		return domain.MovementRecord{}, false
	}

	at, err := time.ParseInLocation(TimestampLayout, strings.TrimSpace(fields[0]), time.Local)
	if err != nil {
		return domain.MovementRecord{}, false
	}

	accountID, ok := strings.CutPrefix(fields[1], accountPrefix)
	if !ok || accountID == "" {
		return domain.MovementRecord{}, false
	}

	if typ, ok := strings.CutPrefix(fields[2], typePrefix); !ok || domain.MovementKind(typ) != kind {
		return domain.MovementRecord{}, false
	}

	rawAmount, ok := strings.CutPrefix(fields[3], amountPrefix)
	if !ok {
		return domain.MovementRecord{}, false
	}
	amount, err := utils.ParseAmount(rawAmount)
	if err != nil || amount <= 0 {
		return domain.MovementRecord{}, false
	}

	rec := domain.MovementRecord{
		AccountID: accountID,
		Movement:  domain.NewMovement(kind, amount, at),
	}
	if len(fields) > 4 {
		if rawBalance, ok := strings.CutPrefix(fields[4], balancePrefix); ok {
			if balance, err := utils.ParseAmount(rawBalance); err == nil {
				rec.ResultingBalance = balance
			}
		}
	}
	return rec, true
}
