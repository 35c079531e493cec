// Package request provides the BloodRequest aggregate: a hospital's request
// for a quantity of one blood type, tracked from creation through approval,
// fulfillment and completion, or until it is rejected or cancelled.
//
// The package includes:
//   - BloodRequest: the aggregate root, created only through NewBloodRequest
//     or rehydrated through RestoreBloodRequest
//   - Status: the lifecycle state machine
//   - BloodType and Urgency: closed enumerations of the request parameters
//   - Metadata: opaque patient and procedure information
//   - the creation validator and the error catalogue shared by the service
//
// Key business rules:
//   - Quantity is between 50 and 5000 ml inclusive
//   - required_by lies strictly after the creation instant and at most 30 days later
//   - The delivery address is not empty
//   - Status follows Pending -> Approved -> Fulfilled -> Completed, with
//     Pending -> Rejected, Pending -> Cancelled and Approved -> Cancelled
//   - fulfilled_at is set once, on entering Fulfilled, and never changes
package request
