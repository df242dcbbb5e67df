package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rotisserie/eris"
)

// 运行状态
const (
	RunProcessing = "processing"
	RunCompleted  = "completed"
	RunFailed     = "failed"
)

// ErrRunNotFound 运行记录不存在
var ErrRunNotFound = eris.New("run not found")

// Run 一次合并运行的记录
type Run struct {
	ID                string              `json:"id"`
	Month             int                 `json:"month"`
	ApplyMappings     bool                `json:"applyMappings"`
	SourceA           string              `json:"sourceA"`
	SourceB           string              `json:"sourceB"`
	MergedPath        string              `json:"mergedPath"`
	ReportPath        string              `json:"reportPath"`
	TotalRows         int                 `json:"totalRows"`
	DuplicatesRemoved int                 `json:"duplicatesRemoved"`
	FrontlineCount    int                 `json:"frontlineCount"`
	MissingColumns    map[string][]string `json:"missingColumns"`
	Status            string              `json:"status"`
	ErrorMessage      string              `json:"errorMessage,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	CompletedAt       *time.Time          `json:"completedAt,omitempty"`
}

// RunOutcome 运行完成时回写的结果
type RunOutcome struct {
	MergedPath        string
	ReportPath        string
	TotalRows         int
	DuplicatesRemoved int
	FrontlineCount    int
	MissingColumns    map[string][]string
}

// CreateRun 新建处理中的运行记录
func (s *Store) CreateRun(id string, month int, applyMappings bool, sourceA, sourceB string) error {
	_, err := s.db.Exec(`
		INSERT INTO merge_runs (id, month, apply_mappings, source_a, source_b, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, month, boolToInt(applyMappings), sourceA, sourceB, RunProcessing)
	if err != nil {
		return eris.Wrapf(err, "store: create run %s", id)
	}
	return nil
}

// CompleteRun 标记运行成功
func (s *Store) CompleteRun(id string, out RunOutcome) error {
	missing := out.MissingColumns
	if missing == nil {
		missing = map[string][]string{}
	}
	missingJSON, err := json.Marshal(missing)
	if err != nil {
		return eris.Wrap(err, "store: encode missing columns")
	}

	res, err := s.db.Exec(`
		UPDATE merge_runs SET
			merged_path = ?,
			report_path = ?,
			total_rows = ?,
			duplicates_removed = ?,
			frontline_count = ?,
			missing_columns = ?,
			status = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, out.MergedPath, out.ReportPath, out.TotalRows, out.DuplicatesRemoved, out.FrontlineCount,
		string(missingJSON), RunCompleted, id)
	if err != nil {
		return eris.Wrapf(err, "store: complete run %s", id)
	}
	return checkAffected(res, id)
}

// FailRun 标记运行失败
func (s *Store) FailRun(id, message string) error {
	res, err := s.db.Exec(`
		UPDATE merge_runs SET status = ?, error_message = ?, completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, RunFailed, message, id)
	if err != nil {
		return eris.Wrapf(err, "store: fail run %s", id)
	}
	return checkAffected(res, id)
}

const runColumns = `id, month, apply_mappings, source_a, source_b, merged_path, report_path,
	total_rows, duplicates_removed, frontline_count, missing_columns, status, error_message,
	created_at, completed_at`

// GetRun 查询单条记录
func (s *Store) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM merge_runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrRunNotFound, "store: %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "store: get run %s", id)
	}
	return run, nil
}

// ListRuns 按创建时间倒序列出最近的记录，limit <= 0 时默认 20
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM merge_runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "store: list runs")
	}
	defer rows.Close()

	var out []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "store: scan run")
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "store: iterate runs")
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		r           Run
		apply       int
		missing     string
		completedAt sql.NullTime
	)
	err := sc.Scan(&r.ID, &r.Month, &apply, &r.SourceA, &r.SourceB, &r.MergedPath, &r.ReportPath,
		&r.TotalRows, &r.DuplicatesRemoved, &r.FrontlineCount, &missing, &r.Status, &r.ErrorMessage,
		&r.CreatedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	r.ApplyMappings = apply != 0
	if completedAt.Valid {
		t := completedAt.Time
		r.CompletedAt = &t
	}
	r.MissingColumns = map[string][]string{}
	if missing != "" {
		if err := json.Unmarshal([]byte(missing), &r.MissingColumns); err != nil {
			return nil, eris.Wrap(err, "decode missing columns")
		}
	}
	return &r, nil
}

func checkAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "store: rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrRunNotFound, "store: %s", id)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
