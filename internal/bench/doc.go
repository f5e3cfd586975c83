// Package bench drives throughput measurements of the hash across input
// sizes and processing widths and summarizes the per-call timings.
package bench
