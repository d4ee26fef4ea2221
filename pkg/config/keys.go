package config

const (
	KeyPort            = "ALTEREGO_PORT"
	KeyDBDriver        = "ALTEREGO_DB_DRIVER"
	KeyDBDSN           = "ALTEREGO_DB_DSN"
	KeyTxRetry         = "ALTEREGO_TX_RETRY"
	KeyLogLevel        = "ALTEREGO_LOG_LEVEL"
	KeySerializeCycles = "ALTEREGO_SERIALIZE_CYCLES"
	KeyIndexBackend    = "ALTEREGO_INDEX_BACKEND"
	KeyRedisAddr       = "ALTEREGO_REDIS_ADDR"
	KeyRedisPassword   = "ALTEREGO_REDIS_PASSWORD"
	KeyRedisDB         = "ALTEREGO_REDIS_DB"
	KeyEffectsURL      = "ALTEREGO_EFFECTS_URL"
	KeyEffectsCatalog  = "ALTEREGO_EFFECTS_CATALOG"
	KeyAssetsDir       = "ALTEREGO_ASSETS_DIR"
	KeyMinioEndpoint   = "ALTEREGO_MINIO_ENDPOINT"
	KeyMinioAccessKey  = "ALTEREGO_MINIO_ACCESS_KEY"
	KeyMinioSecretKey  = "ALTEREGO_MINIO_SECRET_KEY"
	KeyMinioBucket     = "ALTEREGO_MINIO_BUCKET"
	KeyMinioUseSSL     = "ALTEREGO_MINIO_USE_SSL"
)
