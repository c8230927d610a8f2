package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/fxamacker/cbor/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/23skdu/longbow-packvec/internal/cache"
	"github.com/23skdu/longbow-packvec/internal/client"
	"github.com/23skdu/longbow-packvec/internal/quant"
)

type mockFlightClient struct {
	mock.Mock
}

func (m *mockFlightClient) DoPut(ctx context.Context, datasetName string, record arrow.RecordBatch) error {
	args := m.Called(ctx, datasetName, record)
	return args.Error(0)
}

func (m *mockFlightClient) Close() error {
	return nil
}

func post(t *testing.T, h http.Handler, url string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := cbor.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestServer_Full(t *testing.T) {
	store := cache.NewMapCache()
	mfc := &mockFlightClient{}
	srv := NewServer(store, mfc, "test-dataset", 64)
	h := srv.Handler()

	t.Run("Pack with Forwarding", func(t *testing.T) {
		mfc.On("DoPut", mock.Anything, "test-dataset", mock.MatchedBy(func(rec arrow.RecordBatch) bool {
			return rec.NumRows() == 2 && rec.ColumnName(0) == client.PackedColumn
		})).Return(nil).Once()

		before := testutil.ToFloat64(valuesPacked.WithLabelValues("ubyten4"))
		rr := post(t, h, "/pack?format=UByteN4&store=mesh", []float32{1, 0.5, 0, 1, 0, 0, 0, 0})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var resp PackResponse
		require.NoError(t, cbor.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, PackResponse{Format: "ubyten4", Count: 2, Data: []byte{0xFF, 0x80, 0x00, 0xFF, 0, 0, 0, 0}}, resp)
		assert.Equal(t, float64(8), testutil.ToFloat64(valuesPacked.WithLabelValues("ubyten4"))-before)

		entry, ok := store.Get("mesh")
		require.True(t, ok)
		assert.Equal(t, resp.Data, entry.Data)
		mfc.AssertExpectations(t)
	})

	t.Run("Forwarding failure", func(t *testing.T) {
		mfc.On("DoPut", mock.Anything, "test-dataset", mock.Anything).Return(errors.New("remote down")).Once()
		rr := post(t, h, "/pack?format=half", []float32{1})
		assert.Equal(t, http.StatusBadGateway, rr.Code)
		mfc.AssertExpectations(t)
	})

	t.Run("Health Check", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rr := httptest.NewRecorder()

		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "OK", rr.Body.String())
	})
}

func TestServer_PackErrors(t *testing.T) {
	h := NewServer(cache.NewMapCache(), nil, "", 64).Handler()

	tests := []struct {
		name string
		url  string
		body any
		code int
	}{
		{"unknown format", "/pack?format=float9", []float32{1}, http.StatusBadRequest},
		{"missing format", "/pack", []float32{1}, http.StatusBadRequest},
		{"partial vector", "/pack?format=short4", []float32{1, 2, 3}, http.StatusBadRequest},
		{"not cbor floats", "/pack?format=half", "hello", http.StatusBadRequest},
		{"unpack partial element", "/unpack?format=half4", []byte{1, 2, 3}, http.StatusBadRequest},
		{"report partial vector", "/report?format=half2", []float32{1}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(t, h, tt.url, tt.body)
			assert.Equal(t, tt.code, rr.Code, rr.Body.String())
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/pack?format=half", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestServer_Unpack(t *testing.T) {
	h := NewServer(cache.NewMapCache(), nil, "", 64).Handler()

	rr := post(t, h, "/unpack?format=half2", []byte{0x00, 0x3C, 0x00, 0xC0})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var values []float32
	require.NoError(t, cbor.Unmarshal(rr.Body.Bytes(), &values))
	assert.Equal(t, []float32{1, -2}, values)
}

func TestServer_Report(t *testing.T) {
	h := NewServer(cache.NewMapCache(), nil, "", 64).Handler()

	rr := post(t, h, "/report?format=ubyten2", []float32{2, 0.5})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var rep quant.Report
	require.NoError(t, cbor.Unmarshal(rr.Body.Bytes(), &rep))
	assert.Equal(t, "ubyten2", rep.Format)
	assert.Equal(t, 1, rep.Count)
	assert.InDelta(t, 1, rep.MaxErr, 1e-9)
	assert.Len(t, rep.PerLane, 2)
}

func TestServer_Formats(t *testing.T) {
	h := NewServer(cache.NewMapCache(), nil, "", 64).Handler()

	req := httptest.NewRequest(http.MethodGet, "/formats", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var infos []FormatInfo
	require.NoError(t, cbor.Unmarshal(rr.Body.Bytes(), &infos))
	require.Len(t, infos, 32)
	assert.Contains(t, infos, FormatInfo{Name: "float3pk", Size: 4, Components: 3})
	assert.Contains(t, infos, FormatInfo{Name: "half4", Size: 8, Components: 4})
}

func TestServer_PackArrow(t *testing.T) {
	h := NewServer(cache.NewMapCache(), nil, "", 64).Handler()
	pool := memory.NewGoAllocator()

	rec, err := client.NewRecordBatchBuilder(pool).BuildVectors([]float32{1, 2, 0.5, 0.25, 0, 4}, 3)
	require.NoError(t, err)
	defer rec.Release()

	var body bytes.Buffer
	writer := ipc.NewWriter(&body, ipc.WithSchema(rec.Schema()))
	require.NoError(t, writer.Write(rec))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/pack/arrow?format=float3pk", &body)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	reader, err := ipc.NewReader(rr.Body, ipc.WithAllocator(pool))
	require.NoError(t, err)
	defer reader.Release()

	require.True(t, reader.Next())
	format, data, err := client.DecodePacked(reader.Record())
	require.NoError(t, err)
	assert.Equal(t, "float3pk", format)
	assert.Len(t, data, 8)
	assert.False(t, reader.Next())

	t.Run("Component mismatch", func(t *testing.T) {
		var body bytes.Buffer
		writer := ipc.NewWriter(&body, ipc.WithSchema(rec.Schema()))
		require.NoError(t, writer.Write(rec))
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/pack/arrow?format=half4", &body)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestServer_AdmissionCanceled(t *testing.T) {
	srv := NewServer(cache.NewMapCache(), nil, "", 4)
	require.True(t, srv.sem.TryAcquire(4))
	defer srv.sem.Release(4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data, err := cbor.Marshal([]float32{1, 2})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/pack?format=half2", bytes.NewReader(data)).WithContext(ctx)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
