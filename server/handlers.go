// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/yamlmend/core"
	"github.com/poiesic/yamlmend/pipeline"
	"github.com/poiesic/yamlmend/storage"
)

const (
	yamlContentType    = "application/yaml"
	formattedFileName  = "formatted_output.yaml"
	defaultRecordLimit = 20
)

type recordResponse struct {
	ID        string    `json:"id"`
	Source    string    `json:"source,omitempty"`
	Status    string    `json:"status"`
	Output    string    `json:"output,omitempty"`
	Error     string    `json:"error,omitempty"`
	Repaired  bool      `json:"repaired"`
	Model     string    `json:"model,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newRecordResponse(r *core.FormatRecord) recordResponse {
	return recordResponse{
		ID:        strconv.FormatUint(uint64(r.Id), 10),
		Source:    r.Source,
		Status:    r.Status.String(),
		Output:    r.Output,
		Error:     r.Error,
		Repaired:  r.Repaired,
		Model:     r.Model,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (s *Server) handleFormat(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		if tooLarge(err) {
			c.String(http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		c.String(http.StatusBadRequest, "No file was uploaded")
		return
	}

	file, err := header.Open()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error: %s", err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error: %s", err)
		return
	}
	if !utf8.Valid(content) {
		c.String(http.StatusBadRequest, "Uploaded file is not valid UTF-8 text")
		return
	}

	record, err := s.formatter.Format(c.Request.Context(), pipeline.Input{
		Source:  header.Filename,
		Content: string(content),
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrEmptyInput) {
			status = http.StatusBadRequest
		}
		c.String(status, "Error: %s", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+formattedFileName+`"`)
	c.Data(http.StatusOK, yamlContentType, []byte(record.Output))
}

func (s *Server) handleRepair(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		if tooLarge(err) {
			c.String(http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		c.String(http.StatusBadRequest, "Error: %s", err)
		return
	}

	fixed, err := s.repairer.Repair(string(body))
	if err != nil {
		c.String(http.StatusUnprocessableEntity, "Error: %s", err)
		return
	}
	c.Data(http.StatusOK, yamlContentType, []byte(fixed))
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func (s *Server) handleListRecords(c *gin.Context) {
	if s.records == nil {
		c.String(http.StatusServiceUnavailable, "Record storage is disabled")
		return
	}

	limit := defaultRecordLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.String(http.StatusBadRequest, "Error: invalid limit %q", raw)
			return
		}
		limit = n
	}

	records, err := s.records.ListRecords(c.Request.Context(), limit)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error: %s", err)
		return
	}

	out := make([]recordResponse, len(records))
	for i, r := range records {
		out[i] = newRecordResponse(r)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetRecord(c *gin.Context) {
	if s.records == nil {
		c.String(http.StatusServiceUnavailable, "Record storage is disabled")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Error: invalid record id %q", c.Param("id"))
		return
	}

	record, err := s.records.GetRecord(c.Request.Context(), core.ID(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.String(http.StatusNotFound, "Record not found")
			return
		}
		c.String(http.StatusInternalServerError, "Error: %s", err)
		return
	}
	c.JSON(http.StatusOK, newRecordResponse(record))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "Service is running")
}
