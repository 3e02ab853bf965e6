package tipmath

import (
	"fmt"
	"sort"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	"github.com/shopspring/decimal"
)

// fractionPlaces is the precision segment split fractions are frozen at.
const fractionPlaces = 4

// splitTolerance is the allowed deviation of a segment split sum from 1.0.
var splitTolerance = decimal.New(1, -fractionPlaces) // 1e-4

// shareTolerance is the allowed deviation of ownership shares from 100.
var shareTolerance = decimal.New(1, -2) // 0.01

var oneHundred = decimal.NewFromInt(100)

// Share is one employee's cent amount of a split, in deterministic order.
type Share struct {
	EmployeeID  string
	AmountCents int64
}

// SortedEmployeeIDs returns the keys of a split map in lexicographic order.
// All remainder-absorption rules in this package use this ordering, so the
// same inputs always produce the same shares.
func SortedEmployeeIDs(split map[string]decimal.Decimal) []string {
	ids := make([]string, 0, len(split))
	for id := range split {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EqualSplit computes an even split across members. Each of the first n-1
// members (sorted by employee ID) gets floor(1/n * 10^4)/10^4; the last
// absorbs the remainder so the fractions sum to exactly 1.0.
func EqualSplit(memberIDs []string) map[string]decimal.Decimal {
	if len(memberIDs) == 0 {
		return map[string]decimal.Decimal{}
	}

	sorted := make([]string, len(memberIDs))
	copy(sorted, memberIDs)
	sort.Strings(sorted)

	n := decimal.NewFromInt(int64(len(sorted)))
	base := decimal.NewFromInt(1).DivRound(n, fractionPlaces+2).RoundFloor(fractionPlaces)

	split := make(map[string]decimal.Decimal, len(sorted))
	assigned := decimal.Zero
	for _, id := range sorted[:len(sorted)-1] {
		split[id] = base
		assigned = assigned.Add(base)
	}
	split[sorted[len(sorted)-1]] = decimal.NewFromInt(1).Sub(assigned)
	return split
}

// WeightedSplit computes fractions proportional to each member's weight,
// using the same remainder-absorption pattern as EqualSplit. Members with a
// non-positive weight get a zero fraction. If no weight is positive the split
// degrades to an equal split.
func WeightedSplit(weights map[string]decimal.Decimal) map[string]decimal.Decimal {
	if len(weights) == 0 {
		return map[string]decimal.Decimal{}
	}

	ids := make([]string, 0, len(weights))
	total := decimal.Zero
	for id, w := range weights {
		ids = append(ids, id)
		if w.IsPositive() {
			total = total.Add(w)
		}
	}
	sort.Strings(ids)

	if !total.IsPositive() {
		return EqualSplit(ids)
	}

	split := make(map[string]decimal.Decimal, len(ids))
	assigned := decimal.Zero
	for _, id := range ids[:len(ids)-1] {
		w := weights[id]
		if !w.IsPositive() {
			split[id] = decimal.Zero
			continue
		}
		frac := w.DivRound(total, fractionPlaces+2).RoundFloor(fractionPlaces)
		split[id] = frac
		assigned = assigned.Add(frac)
	}
	split[ids[len(ids)-1]] = decimal.NewFromInt(1).Sub(assigned)
	return split
}

// AllocateByFractions slices amountCents across a split map. Every share is
// round(amount * fraction) except the last (sorted employee ID), which
// receives amount minus the sum of the others, so the shares always sum to
// exactly amountCents. Returns shares in sorted-employee-ID order.
func AllocateByFractions(amountCents int64, split map[string]decimal.Decimal) []Share {
	ids := SortedEmployeeIDs(split)
	if len(ids) == 0 {
		return nil
	}

	amount := decimal.NewFromInt(amountCents)
	shares := make([]Share, 0, len(ids))
	var allocated int64
	for _, id := range ids[:len(ids)-1] {
		cents := amount.Mul(split[id]).Round(0).IntPart()
		shares = append(shares, Share{EmployeeID: id, AmountCents: cents})
		allocated += cents
	}
	shares = append(shares, Share{EmployeeID: ids[len(ids)-1], AmountCents: amountCents - allocated})
	return shares
}

// AdjustAllocationsByOwnership slices a total tip across an order's co-owners
// by share percent. Each slice is round(total * sharePercent/100); the final
// owner (sorted by employee ID) absorbs the leftover cents so the slices sum
// exactly to totalCents.
func AdjustAllocationsByOwnership(totalCents int64, ownership domain.OrderOwnership) []Share {
	entries := make([]domain.OrderOwnershipEntry, len(ownership.Entries))
	copy(entries, ownership.Entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].EmployeeID < entries[j].EmployeeID })

	if len(entries) == 0 {
		return nil
	}

	total := decimal.NewFromInt(totalCents)
	shares := make([]Share, 0, len(entries))
	var allocated int64
	for _, e := range entries[:len(entries)-1] {
		cents := total.Mul(e.SharePercent).Div(oneHundred).Round(0).IntPart()
		shares = append(shares, Share{EmployeeID: e.EmployeeID, AmountCents: cents})
		allocated += cents
	}
	last := entries[len(entries)-1]
	shares = append(shares, Share{EmployeeID: last.EmployeeID, AmountCents: totalCents - allocated})
	return shares
}

// ValidateSplitTotal checks a segment split sums to 1.0 within tolerance.
func ValidateSplitTotal(split map[string]decimal.Decimal) error {
	sum := decimal.Zero
	for _, frac := range split {
		sum = sum.Add(frac)
	}
	if sum.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(splitTolerance) {
		return fmt.Errorf("segment split fractions sum to %s, want 1.0", sum.String())
	}
	return nil
}

// ValidateShareTotal checks ownership share percents sum to 100 within
// tolerance.
func ValidateShareTotal(entries []domain.OrderOwnershipEntry) error {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.SharePercent)
	}
	if sum.Sub(oneHundred).Abs().GreaterThan(shareTolerance) {
		return fmt.Errorf("ownership shares sum to %s, want 100", sum.String())
	}
	return nil
}
