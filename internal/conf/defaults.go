// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "Adike Mitra")
	viper.SetDefault("main.timezone", "Asia/Kolkata")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "logs/adike.log")
	viper.SetDefault("main.log.maxsize", 10)
	viper.SetDefault("main.log.maxage", 30)

	viper.SetDefault("webserver.enabled", true)
	viper.SetDefault("webserver.port", "8080")
	viper.SetDefault("webserver.log.enabled", true)
	viper.SetDefault("webserver.log.path", "logs/web.log")
	viper.SetDefault("webserver.log.maxsize", 10)
	viper.SetDefault("webserver.log.maxage", 30)

	viper.SetDefault("security.host", "")
	viper.SetDefault("security.sessionsecret", "")
	viper.SetDefault("security.sessionduration", 60)
	viper.SetDefault("security.redirecttohttps", false)

	viper.SetDefault("models.yellowleafpath", "models/arecanut_ayld_predictor_v2.tflite")
	viper.SetDefault("models.fruitrotpath", "models/arecanut_koleroga_predictor_v3.tflite")
	viper.SetDefault("models.pricepath", "models/arecanut_price_model.tflite")

	viper.SetDefault("uploads.path", "static/uploads")
	viper.SetDefault("uploads.maxsizemb", 16)
	viper.SetDefault("uploads.allowedtypes", []string{"png", "jpg", "jpeg", "gif"})

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "adike.db")
	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "adike")
	viper.SetDefault("output.mysql.password", "secret")
	viper.SetDefault("output.mysql.database", "adike")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")

	viper.SetDefault("pricing.sourceurl", "https://www.commodityonline.com/mandiprices/arecanut/karnataka/mangalore")
	viper.SetDefault("pricing.sourcename", "CAMPCO Mangalore")
	viper.SetDefault("pricing.grade", "Grade A")
	viper.SetDefault("pricing.cachettlminutes", 15)
	viper.SetDefault("pricing.refreshschedule", "0 6 * * *")
	viper.SetDefault("pricing.seedhistorydays", 30)
	viper.SetDefault("pricing.fallback.red", 145)
	viper.SetDefault("pricing.fallback.white", 155)
	viper.SetDefault("pricing.log.enabled", true)
	viper.SetDefault("pricing.log.path", "logs/pricing.log")
	viper.SetDefault("pricing.log.maxsize", 10)
	viper.SetDefault("pricing.log.maxage", 30)

	viper.SetDefault("irrigation.moisturelow", 30)
	viper.SetDefault("irrigation.moisturehigh", 80)

	viper.SetDefault("weather.provider", "simulated")
	viper.SetDefault("weather.debug", false)
}
