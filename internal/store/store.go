// Package store reads the question archive from SQLite.
//
// The archive is opened read-only; nothing in erwindb writes to it.
package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"net/url"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zhubert/erwindb/internal/content"
	"github.com/zhubert/erwindb/internal/errors"
	"github.com/zhubert/erwindb/internal/logger"
	"github.com/zhubert/erwindb/internal/search"
)

// DB is a read-only archive connection. It implements content.Provider.
type DB struct {
	db   *sql.DB
	path string
}

var _ content.Provider = (*DB)(nil)

// Open opens the archive at path read-only.
func Open(ctx context.Context, path string) (*DB, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.DatabaseOpenFailed(path, err)
	}
	dsn := "file:" + (&url.URL{Path: abs}).EscapedPath() + "?mode=ro"
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.DatabaseOpenFailed(path, err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, errors.DatabaseOpenFailed(path, err)
	}
	if _, err := conn.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return nil, errors.DatabaseOpenFailed(path, err)
	}

	logger.WithComponent("store").Info("archive opened", "path", path)
	return &DB{db: conn, path: path}, nil
}

// Close closes the connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// Path returns the archive path.
func (db *DB) Path() string {
	return db.path
}

const questionColumns = `id, COALESCE(title, ''), %s, COALESCE(score, 0),
	COALESCE(view_count, 0), COALESCE(answer_count, 0), COALESCE(creation_date, 0),
	COALESCE(accepted_answer_id, 0), COALESCE(author_name, '')`

// Questions lists every question, newest id first. Bodies are not loaded.
func (db *DB) Questions(ctx context.Context) ([]content.Question, error) {
	const op errors.Op = "store.Questions"
	rows, err := db.db.QueryContext(ctx,
		"SELECT "+fmt.Sprintf(questionColumns, "''")+" FROM questions ORDER BY id DESC")
	if err != nil {
		return nil, errors.DatabaseQueryFailed(op, err)
	}
	defer rows.Close()

	var out []content.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, errors.DatabaseQueryFailed(op, err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseQueryFailed(op, err)
	}
	return out, nil
}

// Question loads one question with its body.
func (db *DB) Question(ctx context.Context, id int64) (content.Question, error) {
	row := db.db.QueryRowContext(ctx,
		"SELECT "+fmt.Sprintf(questionColumns, "COALESCE(body, '')")+" FROM questions WHERE id = ?", id)
	q, err := scanQuestion(row)
	if err == sql.ErrNoRows {
		return content.Question{}, errors.QuestionNotFound(id)
	}
	if err != nil {
		return content.Question{}, errors.DatabaseQueryFailed("store.Question", err)
	}
	return q, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestion(s scanner) (content.Question, error) {
	var q content.Question
	err := s.Scan(&q.ID, &q.Title, &q.Body, &q.Score, &q.ViewCount, &q.AnswerCount,
		&q.CreationDate, &q.AcceptedAnswerID, &q.AuthorName)
	return q, err
}

// Answers lists the answers to a question in archive order.
func (db *DB) Answers(ctx context.Context, questionID int64) ([]content.Answer, error) {
	const op errors.Op = "store.Answers"
	rows, err := db.db.QueryContext(ctx, `
		SELECT id, COALESCE(answer_id, 0), COALESCE(answer_text, ''), COALESCE(score, 0),
		       COALESCE(is_accepted, 0), COALESCE(author_name, ''), COALESCE(author_reputation, 0)
		FROM answers WHERE question_id = ? ORDER BY answer_order`, questionID)
	if err != nil {
		return nil, errors.DatabaseQueryFailed(op, err)
	}
	defer rows.Close()

	var out []content.Answer
	for rows.Next() {
		a := content.Answer{QuestionID: questionID}
		var accepted int64
		if err := rows.Scan(&a.ID, &a.AnswerID, &a.Body, &a.Score, &accepted, &a.AuthorName, &a.AuthorReputation); err != nil {
			return nil, errors.DatabaseQueryFailed(op, err)
		}
		a.IsAccepted = accepted != 0
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseQueryFailed(op, err)
	}
	return out, nil
}

// QuestionComments lists the comments on a question.
func (db *DB) QuestionComments(ctx context.Context, questionID int64) ([]content.Comment, error) {
	return db.comments(ctx, "store.QuestionComments", "question_comments", "question_id", questionID)
}

// AnswerComments lists the comments on an answer, keyed by its row id.
func (db *DB) AnswerComments(ctx context.Context, answerID int64) ([]content.Comment, error) {
	return db.comments(ctx, "store.AnswerComments", "answer_comments", "answer_id", answerID)
}

func (db *DB) comments(ctx context.Context, op errors.Op, table, key string, id int64) ([]content.Comment, error) {
	rows, err := db.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT COALESCE(comment_text, ''), COALESCE(score, 0), COALESCE(author_name, '')
		FROM %s WHERE %s = ? ORDER BY rowid`, table, key), id)
	if err != nil {
		return nil, errors.DatabaseQueryFailed(op, err)
	}
	defer rows.Close()

	var out []content.Comment
	for rows.Next() {
		var c content.Comment
		if err := rows.Scan(&c.Text, &c.Score, &c.AuthorName); err != nil {
			return nil, errors.DatabaseQueryFailed(op, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseQueryFailed(op, err)
	}
	return out, nil
}

// QuestionEmbeddings loads every stored title embedding.
func (db *DB) QuestionEmbeddings(ctx context.Context) ([]search.Vector, error) {
	const op errors.Op = "store.QuestionEmbeddings"
	rows, err := db.db.QueryContext(ctx,
		"SELECT question_id, embedding FROM question_embeddings ORDER BY question_id")
	if err != nil {
		return nil, errors.DatabaseQueryFailed(op, err)
	}
	defer rows.Close()

	var out []search.Vector
	for rows.Next() {
		var (
			id   int64
			blob []byte
		)
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, errors.DatabaseQueryFailed(op, err)
		}
		values, err := DecodeVector(blob)
		if err != nil {
			return nil, errors.E(op, errors.KindDatabase, fmt.Sprintf("question %d", id), err)
		}
		out = append(out, search.Vector{ID: id, Values: values})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseQueryFailed(op, err)
	}
	logger.WithComponent("store").Debug("embeddings loaded", "count", len(out))
	return out, nil
}

// DecodeVector decodes a little-endian float32 blob.
func DecodeVector(blob []byte) ([]float64, error) {
	if len(blob)%4 != 0 {
		return nil, errors.E(errors.Op("store.DecodeVector"), errors.KindInvalid,
			fmt.Sprintf("embedding blob of %d bytes is not a float32 array", len(blob)))
	}
	out := make([]float64, len(blob)/4)
	for i := range out {
		out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:])))
	}
	return out, nil
}
