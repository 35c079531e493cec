// Package services provides domain services of the blood request lifecycle
// that do not belong to the BloodRequest aggregate itself.
//
// The package includes:
//   - AdministratorAuthorizer: decides whether a caller holds a capability
//   - EventNotifier: turns recorded domain events into published notifications
package services
