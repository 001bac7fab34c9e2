// Package interview drives the conversation that fills an order: the Engine
// asks every catalog field once in order, re-asking until the field's
// validator accepts the answer, and the Corrector reviews the finished record
// with the customer and lets them change single fields until they confirm.
//
// Both share one retry loop, so a corrected field goes through the exact
// validation it went through during the interview.
package interview
