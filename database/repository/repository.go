package repository

import (
	catalogRepo "glowslots/database/repository/catalog"
	commitmentRepo "glowslots/database/repository/commitment"
	staffRepo "glowslots/database/repository/staff"
	vendorRepo "glowslots/database/repository/vendor"
)

// Re-export the repository interfaces and constructors.
type StaffRepository = staffRepo.StaffRepository

var NewMongoStaffRepo = staffRepo.NewMongoStaffRepo

type VendorRepository = vendorRepo.VendorRepository

var NewMongoVendorRepo = vendorRepo.NewMongoVendorRepo

type CommitmentRepository = commitmentRepo.CommitmentRepository

var NewMongoCommitmentRepo = commitmentRepo.NewMongoCommitmentRepo

type CatalogRepository = catalogRepo.CatalogRepository

var NewMongoCatalogRepo = catalogRepo.NewMongoCatalogRepo
