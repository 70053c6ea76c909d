// Package planner computes a least-cost annual generation schedule for a
// two-plant hydrothermal system. A monthly dispatch solver optimizes each
// month against a trial water value, and an equilibrium driver iterates
// that value until the price implied by the realized water scarcity matches
// the price the months were solved with.
package planner
