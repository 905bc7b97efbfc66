// Package investwise turns a user's finances and risk tolerance into an
// investment plan and measures that plan against history.
//
// The core functionalities include:
//   - Risk Scoring: a fixed questionnaire whose answers map to a normalized
//     score, a risk tier and the tier's default asset allocation (Score).
//   - Portfolio Simulation: replaying an allocation over historical yearly
//     returns to get the cumulative growth and summary statistics (Simulate).
//   - Strategy Comparison: the recommended allocation simulated side by side
//     with four reference strategies (Compare).
//   - Financial Snapshot: income minus expenses and the suggested monthly
//     investment (NewFinancialSnapshot).
//   - Application State: an immutable State updated by pure reducers
//     (UpdateIncome, UpdateExpenses, UpdateRiskProfile, UpdateSuggestions).
//
// All computations are pure: the same inputs always produce the same result,
// and invalid inputs are reported as errors instead of being coerced.
//
// This package serves as the foundational logic for the `iw` command-line
// tool. The agent package talks to the generative AI collaborator, the store
// package persists the State and the renderer package formats results.
package investwise
