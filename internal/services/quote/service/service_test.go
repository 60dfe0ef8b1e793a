package service

import (
	"context"
	"testing"

	"dockit/internal/core/catalog"
	"dockit/internal/core/interpret"
	"dockit/internal/core/rot"
	"dockit/internal/platform/testkit"
	"dockit/internal/services/quote/domain"
)

type fakeInterpreter struct {
	result interpret.Result
	calls  int
}

func (f *fakeInterpreter) Interpret(_ context.Context, freeText string) interpret.Result {
	f.calls++
	res := f.result
	res.FreeText = freeText
	return res
}

type fakePricer struct {
	prices map[string]float64
	keys   []string
	refs   []string
}

func (f *fakePricer) Price(customerKey, articleRef string) float64 {
	f.keys = append(f.keys, customerKey)
	f.refs = append(f.refs, articleRef)
	return f.prices[articleRef]
}

func minutes(v float64) *float64 { return &v }

func interpretedResult() interpret.Result {
	return interpret.Result{
		Tasks: []interpret.TaskMatch{
			{
				TaskID:         "BYTA-VAGGUTTAG",
				Label:          "Byte av vägguttag",
				MatchedPattern: "byta vägguttag",
				TextSegment:    "byta två vägguttag i köket",
				Quantity:       2,
				TimeSource:     "manual",
				PerUnitMinutes: minutes(30),
				TotalMinutes:   minutes(60),
				Materials: []catalog.MaterialReq{
					{Ref: "VAGGUTTAG-INFALLT", Description: "Vägguttag infällt", QuantityPerUnit: 1},
				},
			},
		},
		Totals: interpret.Totals{Count: 1, TotalMinutes: 60, TotalHours: 1},
	}
}

func TestMakeDraft_WorkAndMaterialLines(t *testing.T) {
	t.Parallel()

	interp := &fakeInterpreter{result: interpretedResult()}
	pricer := &fakePricer{prices: map[string]float64{"VAGGUTTAG-INFALLT": 45.5}}
	svc := New(interp, pricer, Config{})

	draft := svc.MakeDraft(context.Background(), domain.DraftInput{
		CustomerName: "Anna Andersson",
		JobSummary:   "byta två vägguttag i köket",
	})

	if draft.ID == "" {
		t.Fatal("expected a generated draft id")
	}
	if draft.Title != "Preliminär offert för Anna Andersson" {
		t.Fatalf("unexpected title %q", draft.Title)
	}
	if len(draft.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(draft.Lines))
	}

	work := draft.Lines[0]
	if work.Kind != "work" || !work.RotEligible {
		t.Fatalf("unexpected work line %+v", work)
	}
	testkit.CloseTo(t, work.Quantity, 1.0, 1e-9)
	testkit.CloseTo(t, work.UnitPrice, DefaultHourlyRate, 1e-9)
	if work.Description != "Byte av två vägguttag i köket" {
		t.Fatalf("unexpected work description %q", work.Description)
	}

	mat := draft.Lines[1]
	if mat.Kind != "material" || mat.RotEligible {
		t.Fatalf("unexpected material line %+v", mat)
	}
	testkit.CloseTo(t, mat.Quantity, 2.0, 1e-9)
	testkit.CloseTo(t, mat.UnitPrice, 45.5, 1e-9)
	testkit.CloseTo(t, mat.Total, 91.0, 1e-9)

	testkit.CloseTo(t, draft.SubtotalSEK, 891.0, 1e-9)
	testkit.CloseTo(t, draft.TotalSEK, 891.0, 1e-9)
	testkit.CloseTo(t, draft.RotDiscountSEK, 0.0, 1e-9)
	testkit.CloseTo(t, draft.InterpretedWorkHours, 1.0, 1e-9)
	if draft.RotSummary != nil {
		t.Fatal("rot summary should be absent without apply_rot")
	}
	if draft.Interpretation == nil {
		t.Fatal("interpretation should be attached")
	}
}

func TestMakeDraft_RotApplied(t *testing.T) {
	t.Parallel()

	interp := &fakeInterpreter{result: interpretedResult()}
	pricer := &fakePricer{prices: map[string]float64{"VAGGUTTAG-INFALLT": 45.5}}
	svc := New(interp, pricer, Config{})

	draft := svc.MakeDraft(context.Background(), domain.DraftInput{
		CustomerName: "Anna Andersson",
		JobSummary:   "byta två vägguttag i köket",
		ApplyRot:     true,
	})

	if draft.RotSummary == nil || !draft.RotSummary.Applied {
		t.Fatal("expected an applied rot summary")
	}
	// 30% of the 800 SEK work subtotal
	testkit.CloseTo(t, draft.RotDiscountSEK, 240.0, 1e-9)
	testkit.CloseTo(t, draft.TotalSEK, 651.0, 1e-9)
	testkit.CloseTo(t, draft.Lines[0].RotShare, 240.0, 1e-9)
	testkit.CloseTo(t, draft.Lines[1].RotShare, 0.0, 1e-9)
}

func TestMakeDraft_PayloadLinesWinOverInterpretation(t *testing.T) {
	t.Parallel()

	interp := &fakeInterpreter{result: interpretedResult()}
	pricer := &fakePricer{prices: map[string]float64{"VAGGUTTAG-INFALLT": 45.5}}
	svc := New(interp, pricer, Config{})

	draft := svc.MakeDraft(context.Background(), domain.DraftInput{
		CustomerName: "Anna Andersson",
		JobSummary:   "byta två vägguttag i köket",
		Lines: []domain.LineInput{
			{Kind: "work", Description: "Eget arbete", Quantity: 2, UnitPrice: 950},
			{Kind: "material", Ref: "EGEN-ARTIKEL", Description: "Eget material", Quantity: 3, UnitPrice: 25},
		},
	})

	if len(draft.Lines) != 2 {
		t.Fatalf("expected payload lines only, got %d", len(draft.Lines))
	}
	if len(pricer.refs) != 0 {
		t.Fatalf("priced material already carrying a price: %v", pricer.refs)
	}
	if !draft.Lines[0].RotEligible || draft.Lines[1].RotEligible {
		t.Fatal("only work lines should be rot eligible")
	}
	testkit.CloseTo(t, draft.SubtotalSEK, 2*950+3*25.0, 1e-9)
	// interpretation still runs for the summary even when lines are supplied
	if interp.calls != 1 || draft.Interpretation == nil {
		t.Fatal("summary should still be interpreted")
	}
}

func TestMakeDraft_HourlyRate(t *testing.T) {
	t.Parallel()

	interp := &fakeInterpreter{result: interpretedResult()}
	svc := New(interp, &fakePricer{}, Config{})

	def := svc.MakeDraft(context.Background(), domain.DraftInput{
		CustomerName: "Anna",
		JobSummary:   "byta vägguttag",
	})
	testkit.CloseTo(t, def.HourlyRateSEK, DefaultHourlyRate, 1e-9)

	custom := svc.MakeDraft(context.Background(), domain.DraftInput{
		CustomerName: "Anna",
		JobSummary:   "byta vägguttag",
		HourlyRate:   950,
	})
	testkit.CloseTo(t, custom.HourlyRateSEK, 950.0, 1e-9)
	testkit.CloseTo(t, custom.Lines[0].UnitPrice, 950.0, 1e-9)
}

func TestMakeDraft_CustomerKeyPrefersEmail(t *testing.T) {
	t.Parallel()

	interp := &fakeInterpreter{result: interpretedResult()}
	pricer := &fakePricer{prices: map[string]float64{}}
	svc := New(interp, pricer, Config{})

	svc.MakeDraft(context.Background(), domain.DraftInput{
		CustomerName:  "Anna Andersson",
		CustomerEmail: "anna@example.com",
		JobSummary:    "byta vägguttag",
	})
	if len(pricer.keys) == 0 || pricer.keys[0] != "anna@example.com" {
		t.Fatalf("expected email as customer key, got %v", pricer.keys)
	}

	pricer.keys = nil
	svc.MakeDraft(context.Background(), domain.DraftInput{
		CustomerName: "Anna Andersson",
		JobSummary:   "byta vägguttag",
	})
	if len(pricer.keys) == 0 || pricer.keys[0] != "Anna Andersson" {
		t.Fatalf("expected name fallback as customer key, got %v", pricer.keys)
	}
}

func TestMakeDraft_EmptySummaryYieldsEmptyDraft(t *testing.T) {
	t.Parallel()

	interp := &fakeInterpreter{result: interpretedResult()}
	svc := New(interp, &fakePricer{}, Config{})

	draft := svc.MakeDraft(context.Background(), domain.DraftInput{CustomerName: "Anna"})

	if interp.calls != 0 {
		t.Fatal("empty summary should not be interpreted")
	}
	if len(draft.Lines) != 0 || draft.SubtotalSEK != 0 || draft.Interpretation != nil {
		t.Fatalf("expected empty draft, got %+v", draft)
	}
}

func TestMakeDraft_TaskWithoutTimeUsesUnitQuantity(t *testing.T) {
	t.Parallel()

	res := interpret.Result{
		Tasks: []interpret.TaskMatch{{
			TaskID:      "MATERIAL-ONLY",
			Label:       "Materialleverans",
			TextSegment: "tre dosor",
			Quantity:    3,
			TimeSource:  "manual",
		}},
		Totals: interpret.Totals{Count: 1},
	}
	svc := New(&fakeInterpreter{result: res}, &fakePricer{}, Config{HourlyRate: 700})

	draft := svc.MakeDraft(context.Background(), domain.DraftInput{
		CustomerName: "Anna",
		JobSummary:   "tre dosor",
	})

	if len(draft.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(draft.Lines))
	}
	testkit.CloseTo(t, draft.Lines[0].Quantity, 3.0, 1e-9)
	testkit.CloseTo(t, draft.Lines[0].UnitPrice, 700.0, 1e-9)
}

func TestMakeDraft_RotConfigOverride(t *testing.T) {
	t.Parallel()

	interp := &fakeInterpreter{result: interpretedResult()}
	svc := New(interp, &fakePricer{}, Config{
		Rot: rot.Config{Rate: 0.5, MaxPerPerson: 100, Persons: 1},
	})

	draft := svc.MakeDraft(context.Background(), domain.DraftInput{
		CustomerName: "Anna",
		JobSummary:   "byta vägguttag",
		ApplyRot:     true,
	})

	if draft.RotSummary == nil || !draft.RotSummary.Limited {
		t.Fatal("expected the cap to limit the discount")
	}
	testkit.CloseTo(t, draft.RotDiscountSEK, 100.0, 1e-9)
}
