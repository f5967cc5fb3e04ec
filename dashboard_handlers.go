package mqstub

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func initDashboardRoutes(e *echo.Echo, b *Broker) {
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "mqstub dashboard")
	})

	e.GET("/api/stats", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, b.Stats.JSON())
	})

	e.POST("/api/stats/reset", func(c echo.Context) error {
		b.Stats.Reset()
		return c.NoContent(http.StatusOK)
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(b.metrics, promhttp.HandlerOpts{})))

	e.GET("/stats", func(c echo.Context) error {
		return c.HTML(http.StatusOK, `
<body>
<button id="resetBtn">Reset</button>
<h4>Broker Stats:</h4>
<pre id="stats"></pre>

<script>
var stats = document.querySelector("#stats");

document.querySelector("#resetBtn").onclick = function(){
fetch("/api/stats/reset", {method:"POST"});
};

function formatTime(seconds) {
var time = new Date(1000 * seconds).toISOString().substr(11, 8);
var parts = time.split(":");
return parts[0] + "h " + parts[1] + "m " + parts[2] + "s";
}

function fetchStats() {
fetch("/api/stats").then((res)=>res.json())
.then((data)=>{
	stats.innerHTML= 'Connections: '+data.connections+
'\nConnected Clients: '+data.clients+
'\nPackets: '+data.packets+
'\nConnects: '+data.connects+
'\nPublishes: '+data.publishes+
'\nSkipped: '+data.skipped+
'\nMalformed: '+data.malformed+
'\nBytes In: '+data.bytesIn+
'\nBytes Out: '+data.bytesOut+
'\nUptime: '+formatTime(data.uptime);
});
}

setInterval(fetchStats, 1000);
</script>
</body>
`)
	})
}
