package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/rupeeworks/folio/internal/common"
	"github.com/rupeeworks/folio/internal/models"
)

func TestScoreFund(t *testing.T) {
	tests := []struct {
		name string
		fund models.Fund
		want float64
	}{
		{
			name: "all metrics capped",
			fund: models.Fund{SharpeRatio: fptr(3), Return3Y: fptr(45), ExpenseRatio: fptr(0.0001), Volatility: fptr(0.0001)},
			// sharpe and return cap at 1; expense and volatility terms approach 1
			want: 0.3 + 0.3 + 0.2*(1-0.0001/2) + 0.2*(1-0.0001/30),
		},
		{
			name: "mid-range metrics",
			fund: models.Fund{SharpeRatio: fptr(1), Return3Y: fptr(15), ExpenseRatio: fptr(1), Volatility: fptr(15)},
			want: 0.3*0.5 + 0.3*0.5 + 0.2*0.5 + 0.2*0.5,
		},
		{
			name: "missing metrics contribute nothing",
			fund: models.Fund{Return3Y: fptr(30)},
			want: 0.3,
		},
		{
			name: "negative metrics contribute nothing",
			fund: models.Fund{SharpeRatio: fptr(-0.5), Return3Y: fptr(-10)},
			want: 0,
		},
		{
			name: "high expense and volatility floor at zero",
			fund: models.Fund{ExpenseRatio: fptr(5), Volatility: fptr(90)},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreFund(&tt.fund)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("scoreFund = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFundCandidatesTopTwo(t *testing.T) {
	ref := &memFundRef{funds: []*models.Fund{
		{SchemeCode: 1, SchemeName: "Weak", Category: "Flexi Cap", SharpeRatio: fptr(0.2)},
		{SchemeCode: 2, SchemeName: "Strong", Category: "Flexi Cap", SharpeRatio: fptr(2), Return3Y: fptr(30)},
		{SchemeCode: 3, SchemeName: "Middling", Category: "Mid Cap", SharpeRatio: fptr(1)},
		{SchemeCode: 4, SchemeName: "Debt", Category: "Gilt", SharpeRatio: fptr(2)},
	}}
	svc := NewService(ref, common.NewSilentLogger())

	got, err := svc.fundCandidates(context.Background(), models.AssetClassEquity)
	if err != nil {
		t.Fatalf("fundCandidates: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if got[0].SchemeCode != 2 {
		t.Errorf("top candidate = %d, want 2", got[0].SchemeCode)
	}
	if got[1].SchemeCode != 3 {
		t.Errorf("second candidate = %d, want 3", got[1].SchemeCode)
	}
}

func TestFundCandidatesEmptyClass(t *testing.T) {
	ref := &memFundRef{funds: []*models.Fund{
		{SchemeCode: 1, Category: "Flexi Cap"},
	}}
	svc := NewService(ref, common.NewSilentLogger())

	got, err := svc.fundCandidates(context.Background(), models.AssetClassGold)
	if err != nil {
		t.Fatalf("fundCandidates: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d candidates for an empty class, want 0", len(got))
	}
}
