package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func event(amount float64) Event {
	return Event{Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), CreditAmount: amount, PaymentMethod: MethodCash}
}

func TestReconcilePartialThenPaid(t *testing.T) {
	status, events := Reconcile(1000, []Event{event(400)}, StatusPending)
	require.Equal(t, StatusPartiallyPaid, status)
	require.InDelta(t, 600, events[0].RemainingAmount, 0.0001)

	status, events = Reconcile(1000, []Event{event(400), event(600)}, StatusPending)
	require.Equal(t, StatusPaid, status)
	require.InDelta(t, 600, events[0].RemainingAmount, 0.0001)
	require.InDelta(t, 0, events[1].RemainingAmount, 0.0001)
}

func TestReconcileEmptyHistory(t *testing.T) {
	status, events := Reconcile(500, nil, "")
	require.Equal(t, StatusPending, status)
	require.Nil(t, events)

	status, _ = Reconcile(500, nil, StatusFailed)
	require.Equal(t, StatusFailed, status)

	status, _ = Reconcile(500, nil, Status("bogus"))
	require.Equal(t, StatusPending, status)
}

func TestReconcileOverpaymentClampsRemainder(t *testing.T) {
	status, events := Reconcile(100, []Event{event(250)}, StatusPending)
	require.Equal(t, StatusPaid, status)
	require.InDelta(t, 0, events[0].RemainingAmount, 0.0001)
}

func TestReconcileZeroCreditsStayPending(t *testing.T) {
	status, events := Reconcile(100, []Event{event(0), event(0)}, StatusPending)
	require.Equal(t, StatusPending, status)
	require.InDelta(t, 100, events[0].RemainingAmount, 0.0001)
	require.InDelta(t, 100, events[1].RemainingAmount, 0.0001)
}

func TestReconcileZeroTotalNeverPaid(t *testing.T) {
	// paid requires total > 0; any credit against a zero total stays partial.
	status, _ := Reconcile(0, []Event{event(50)}, StatusPending)
	require.Equal(t, StatusPartiallyPaid, status)
}

func TestReconcileFloatDriftStillPaid(t *testing.T) {
	// 0.1+0.2 overshoots 0.3 in float64; >= keeps the status at paid.
	status, _ := Reconcile(0.3, []Event{event(0.1), event(0.2)}, StatusPending)
	require.Equal(t, StatusPaid, status)
}

func TestReconcileIdempotent(t *testing.T) {
	history := []Event{event(100), event(250), event(50)}
	status1, first := Reconcile(500, history, StatusPending)
	status2, second := Reconcile(500, first, StatusPending)
	require.Equal(t, status1, status2)
	require.Equal(t, first, second)
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	history := []Event{{CreditAmount: 100, RemainingAmount: 12345}}
	_, _ = Reconcile(500, history, StatusPending)
	require.InDelta(t, 12345, history[0].RemainingAmount, 0.0001)
}

func TestAppendRewalksFullHistory(t *testing.T) {
	// Stored remainders are garbage on purpose; Append must ignore them.
	history := []Event{{CreditAmount: 400, RemainingAmount: 9999, PaymentMethod: MethodOnline}}
	status, events := Append(1000, history, event(600))
	require.Equal(t, StatusPaid, status)
	require.Len(t, events, 2)
	require.InDelta(t, 600, events[0].RemainingAmount, 0.0001)
	require.InDelta(t, 0, events[1].RemainingAmount, 0.0001)
}

func TestStatusLaw(t *testing.T) {
	cases := []struct {
		total   float64
		credits []float64
		want    Status
	}{
		{1000, nil, StatusPending},
		{1000, []float64{0}, StatusPending},
		{1000, []float64{999.99}, StatusPartiallyPaid},
		{1000, []float64{1000}, StatusPaid},
		{1000, []float64{400, 600}, StatusPaid},
		{1000, []float64{400, 700}, StatusPaid},
		{1000, []float64{400, 100}, StatusPartiallyPaid},
	}
	for _, tc := range cases {
		var events []Event
		for _, c := range tc.credits {
			events = append(events, event(c))
		}
		status, _ := Reconcile(tc.total, events, StatusPending)
		require.Equalf(t, tc.want, status, "total=%v credits=%v", tc.total, tc.credits)
	}
}

func TestTotalPaid(t *testing.T) {
	require.InDelta(t, 450, TotalPaid([]Event{event(100), event(350)}), 0.0001)
	require.InDelta(t, 0, TotalPaid(nil), 0.0001)
}

func TestVocabulary(t *testing.T) {
	require.True(t, ValidMethod(MethodCash))
	require.True(t, ValidMethod(MethodOnline))
	require.True(t, ValidMethod(MethodOther))
	require.False(t, ValidMethod("wire"))
	require.True(t, ValidStatus(StatusPartiallyPaid))
	require.False(t, ValidStatus("settled"))
}
