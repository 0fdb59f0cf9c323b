package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusRoundTrip(t *testing.T) {
	for _, code := range []string{"0", "1", "2", "3"} {
		s := StatusFromCode(code)
		assert.Equal(t, s, StatusFromCode(s.Code()), "code %s", code)
		assert.Equal(t, code, s.Code())
	}

	for _, bad := range []string{"", "4", "-1", "approved", " 1"} {
		assert.Equal(t, StatusPending, StatusFromCode(bad), "code %q", bad)
	}
	assert.Equal(t, "0", Status("rejected").Code())
	assert.Equal(t, StatusPending, ParseStatus("rejected"))
	assert.Equal(t, StatusCancelled, ParseStatus("cancelled"))
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusCompleted, StatusCancelled} {
		assert.True(t, s.Valid(), "status %s", s)
	}
	assert.False(t, Status("rejected").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "승인", StatusApproved.Label())
	assert.Equal(t, "대기", Status("weird").Label())
}

func TestBookingRecordDecode(t *testing.T) {
	raw := `{
		"id": "17",
		"status": 2,
		"totalPrice": 35000,
		"startDt": [2024, 5, 1, 10, 30],
		"endDt": "2024-05-01T12:00:00",
		"createdAt": "not-a-date",
		"updatedAt": {"nested": true}
	}`

	var rec BookingRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))

	assert.Equal(t, FlexID(17), rec.ID)
	assert.Equal(t, StatusCode("2"), rec.Status)
	assert.Equal(t, Number(35000), rec.TotalPrice)

	start, ok := rec.StartDt.In(time.UTC)
	require.True(t, ok)
	assert.Equal(t, "2024-05-01 10:30", start.Format("2006-01-02 15:04"))

	_, ok = rec.CreatedAt.In(time.UTC)
	assert.False(t, ok)
	assert.True(t, rec.UpdatedAt.IsZero())
}

func TestTimestampZones(t *testing.T) {
	seoul := time.FixedZone("KST", 9*3600)

	ts := Timestamp{Raw: "2024-05-01T01:00:00Z"}
	got, ok := ts.In(seoul)
	require.True(t, ok)
	assert.Equal(t, "10:00", got.Format(TimeLayout))

	local := Timestamp{Raw: "2024-05-01T01:00:00"}
	got, ok = local.In(seoul)
	require.True(t, ok)
	assert.Equal(t, "01:00", got.Format(TimeLayout))

	var null Timestamp
	require.NoError(t, json.Unmarshal([]byte("null"), &null))
	assert.True(t, null.IsZero())
}

func TestKeywordDecode(t *testing.T) {
	var kws []Keyword
	require.NoError(t, json.Unmarshal([]byte(`["친절해요", {"id": 3, "label": "꼼꼼해요"}, {"name": "시간 준수"}]`), &kws))
	require.Len(t, kws, 3)
	assert.Equal(t, "친절해요", kws[0].Text())
	assert.Equal(t, FlexID(3), kws[1].ID)
	assert.Equal(t, "시간 준수", kws[2].Text())
}

func TestCompanyContext(t *testing.T) {
	var nilCtx *CompanyContext
	assert.False(t, nilCtx.HasCompany())
	assert.False(t, (&CompanyContext{}).HasCompany())
	assert.True(t, (&CompanyContext{CompanyID: 3}).HasCompany())
}
