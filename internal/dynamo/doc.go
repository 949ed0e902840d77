// Package dynamo provides the shared vocabulary every RHS variant and
// post-trace diagnostic is built against:
//
//   - [State]: a trace's state vector, in whatever coordinates the RHS
//     advances in.
//   - [System]: the contract rhs.* implements: dy/dt = f(x, u, t).
//   - [Metric]: the contract diagnostics.* implements: a named running
//     statistic over a finished trace's samples.
package dynamo
