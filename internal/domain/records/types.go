package records

type RecordType string

const (
	RecordTypeVaccine         RecordType = "VACCINE"
	RecordTypeDeworming       RecordType = "DEWORMING"
	RecordTypeTreatment       RecordType = "TREATMENT"
	RecordTypeWeightRecorded  RecordType = "WEIGHT_RECORDED"
	RecordTypeBirth           RecordType = "BIRTH"
	RecordTypeBreedingService RecordType = "BREEDING_SERVICE"
	RecordTypeStatusChange    RecordType = "STATUS_CHANGE"
	RecordTypeNote            RecordType = "NOTE"
)

type ActorType string

const (
	ActorTypeOwnerUser    ActorType = "OWNER_USER"
	ActorTypeDelegateUser ActorType = "DELEGATE_USER"
)

type Source string

const (
	SourceManual   Source = "manual"
	SourceImported Source = "imported"
)

type RecordStatus string

const (
	RecordStatusActive RecordStatus = "active"
	RecordStatusVoided RecordStatus = "voided"
)
