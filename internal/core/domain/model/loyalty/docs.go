// Package loyalty contains the loyalty rule engine domain model.
//
// A supplier owns at most one Program: a points divisor, named tiers and a
// set of reward Rules. A Rule fires on the customer's nth qualifying order
// (all orders or refills only, depending on the trigger type).
//
// A Redemption freezes the eligibility verdict at request time. The verdict
// is computed once from the customer's historical order count and never
// recomputed; suppliers approve or reject pending redemptions on trust.
package loyalty
