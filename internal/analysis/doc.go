// Package analysis characterizes how a stored run relaxes toward thermal
// equilibrium.
//
//   - [Spread]: hottest minus coldest particle in one sample
//   - [RelaxationRate]: exponential decay rate of the spread
//   - [SettleTime]: first time the spread falls below a fraction of its start
//
// # Relaxation
//
// Random pairwise contacts drive the spread down roughly exponentially. The
// rate is estimated from the separation in log space:
//
//	lambda := analysis.RelaxationRate(times, temps)
//	halfLife := math.Ln2 / lambda
package analysis
