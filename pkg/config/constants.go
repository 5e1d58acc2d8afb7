package config

// EnvPrefix is the envconfig namespace for all PharmaFlow settings.
const EnvPrefix = "PHARMAFLOW"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "PHARMAFLOW_DB_DSN"
	EnvDBHost = "PHARMAFLOW_DB_HOST"
	EnvDBUser = "PHARMAFLOW_DB_USER"
	EnvDBName = "PHARMAFLOW_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
